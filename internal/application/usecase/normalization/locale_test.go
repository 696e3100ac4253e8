package normalization

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/valueobject"
)

func TestParseDate(t *testing.T) {
	t.Run("DD/MM/YYYY string", func(t *testing.T) {
		got := ParseDate(valueobject.StringCell("25/12/2024"))
		want := time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("ISO string", func(t *testing.T) {
		got := ParseDate(valueobject.StringCell("2024-09-10"))
		want := time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Excel serial number", func(t *testing.T) {
		// 45000 days after 1899-12-30 is 2023-03-15.
		got := ParseDate(valueobject.NumberCell(45000))
		want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Excel serial as numeric text", func(t *testing.T) {
		got := ParseDate(valueobject.StringCell("45000"))
		want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("date cell passes through", func(t *testing.T) {
		want := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
		if got := ParseDate(valueobject.DateCell(want)); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty cell falls back without panicking", func(t *testing.T) {
		before := time.Now().Add(-time.Minute)
		got := ParseDate(valueobject.EmptyCell())
		if got.Before(before) {
			t.Errorf("expected a current-time fallback, got %v", got)
		}
	})

	t.Run("impossible calendar date falls back", func(t *testing.T) {
		got := ParseDate(valueobject.StringCell("31/02/2024"))
		if got.Year() == 2024 && got.Month() == time.February {
			t.Errorf("expected fallback, got parsed %v", got)
		}
	})

	t.Run("out-of-range year falls back", func(t *testing.T) {
		got := ParseDate(valueobject.StringCell("01/01/1850"))
		if got.Year() == 1850 {
			t.Errorf("expected fallback, got %v", got)
		}
	})
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"argentine thousands and decimal", "1.231.287,21", "1231287.21"},
		{"anglo thousands and decimal", "1,231,287.21", "1231287.21"},
		{"single comma is decimal", "15000,50", "15000.5"},
		{"single dot is decimal", "15000.50", "15000.5"},
		{"short single-comma decimal", "1,5", "1.5"},
		{"two-digit single-comma decimal", "12,34", "12.34"},
		{"comma with three digits is still decimal", "1,500", "1.5"},
		{"multiple commas are thousands", "1,231,287", "1231287"},
		{"multiple dots are thousands", "1.231.287", "1231287"},
		{"currency prefix stripped", "$ 1.500,00", "1500"},
		{"negative amount", "-2.500,75", "-2500.75"},
		{"plain integer", "1500", "1500"},
		{"garbage yields zero", "sin datos", "0"},
		{"empty yields zero", "", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseNumber(valueobject.StringCell(tc.input))
			if want := decimal.RequireFromString(tc.want); !got.Equal(want) {
				t.Errorf("ParseNumber(%q) = %s, want %s", tc.input, got.String(), want.String())
			}
		})
	}

	t.Run("native number passes through", func(t *testing.T) {
		got := ParseNumber(valueobject.NumberCell(1231287.21))
		if !got.Equal(decimal.RequireFromString("1231287.21")) {
			t.Errorf("expected 1231287.21, got %s", got.String())
		}
	})

	t.Run("empty cell yields zero", func(t *testing.T) {
		if got := ParseNumber(valueobject.EmptyCell()); !got.IsZero() {
			t.Errorf("expected zero, got %s", got.String())
		}
	})
}

func TestParseCUIT(t *testing.T) {
	t.Run("formatted CUIT normalized", func(t *testing.T) {
		if got := ParseCUIT(valueobject.StringCell("30-71234567-8")); got != "30712345678" {
			t.Errorf("expected 30712345678, got %q", got)
		}
	})

	t.Run("bare 11 digits kept", func(t *testing.T) {
		if got := ParseCUIT(valueobject.StringCell("20345678901")); got != "20345678901" {
			t.Errorf("expected 20345678901, got %q", got)
		}
	})

	t.Run("numeric cell normalized", func(t *testing.T) {
		if got := ParseCUIT(valueobject.NumberCell(30712345678)); got != "30712345678" {
			t.Errorf("expected 30712345678, got %q", got)
		}
	})

	t.Run("wrong digit count returns original", func(t *testing.T) {
		if got := ParseCUIT(valueobject.StringCell("DNI 12345678")); got != "DNI 12345678" {
			t.Errorf("expected original value back, got %q", got)
		}
	})

	t.Run("empty cell returns empty", func(t *testing.T) {
		if got := ParseCUIT(valueobject.EmptyCell()); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestScanCUIT(t *testing.T) {
	t.Run("finds embedded CUIT", func(t *testing.T) {
		if got := ScanCUIT("TRANSF RECIBIDA 30712345678 N: ACME SA -"); got != "30712345678" {
			t.Errorf("expected 30712345678, got %q", got)
		}
	})

	t.Run("no CUIT yields empty", func(t *testing.T) {
		if got := ScanCUIT("PAGO SERVICIOS 1234"); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestScanCBU(t *testing.T) {
	t.Run("finds embedded CBU", func(t *testing.T) {
		if got := ScanCBU("TRANSF CBU 2850590940090418135201"); got != "2850590940090418135201" {
			t.Errorf("expected the 22-digit account, got %q", got)
		}
	})

	t.Run("CUIT-length runs are not a CBU", func(t *testing.T) {
		if got := ScanCBU("TRANSF 30712345678"); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}
