// Package normalization turns heterogeneous spreadsheet exports into
// canonical ledger and bank-statement records. It owns the Argentine locale
// coercion rules (dates, numbers, CUITs) and the column-layout detection for
// both the ledger and the bank side.
package normalization

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/valueobject"
)

// excelEpochOffset is the number of days between the Excel epoch
// (1899-12-30) and the UNIX epoch (1970-01-01).
const excelEpochOffset = 25569

var (
	dmyPattern    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
	isoPattern    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	digitsPattern = regexp.MustCompile(`\d`)
	cuitPattern   = regexp.MustCompile(`\d{11}`)
	cbuPattern    = regexp.MustCompile(`\d{22}`)
)

// ParseDate coerces a cell into a date. It accepts date cells, Excel
// epoch-day numbers, DD/MM/YYYY strings and ISO strings, in that order of
// preference. Anything unparseable, or a parsed date outside the plausible
// 1900-2100 range, degrades to the current wall-clock time so a single bad
// cell never aborts a file. It never fails.
func ParseDate(c valueobject.Cell) time.Time {
	switch c.Kind {
	case valueobject.CellDate:
		if dateInRange(c.Date) {
			return c.Date
		}
	case valueobject.CellNumber:
		if t, ok := fromExcelSerial(c.Number); ok {
			return t
		}
	case valueobject.CellString:
		if t, ok := parseDateString(c.Text); ok {
			return t
		}
	}
	return time.Now().UTC()
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, month, day)
	}
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return buildDate(year, month, day)
	}
	// Excel serials sometimes arrive as numeric text.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromExcelSerial(n)
	}
	return time.Time{}, false
}

func fromExcelSerial(n float64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	t := time.Unix(int64((n-excelEpochOffset)*86400), 0).UTC()
	if !dateInRange(t) {
		return time.Time{}, false
	}
	return t, true
}

// buildDate validates calendar fields before construction. time.Date
// normalizes overflowing fields (31/02 becomes March 3rd), so the built
// date must round-trip to the same components.
func buildDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func dateInRange(t time.Time) bool {
	return t.Year() >= 1900 && t.Year() <= 2100
}

// ParseNumber coerces a cell into a decimal amount. Numeric cells pass
// through unchanged. Strings are stripped down to digits, separators and
// sign; when both "." and "," appear, whichever occurs later in the string
// is the decimal point and the other is a thousands separator (covering
// both "1.231.287,21" and "1,231,287.21"). A single trailing separator
// group is a decimal ("15000,50"), repeated ones are thousands marks.
// Returns zero on anything unparseable; never fails.
func ParseNumber(c valueobject.Cell) decimal.Decimal {
	switch c.Kind {
	case valueobject.CellNumber:
		return decimal.NewFromFloat(c.Number)
	case valueobject.CellString:
		return parseNumberString(c.Text)
	}
	return decimal.Zero
}

func parseNumberString(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = decimalizeLast(clean, ",")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") == 1 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(clean, ".") > 1 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// decimalizeLast turns the last occurrence of sep into the decimal point
// and removes every earlier occurrence.
func decimalizeLast(s, sep string) string {
	last := strings.LastIndex(s, sep)
	head := strings.ReplaceAll(s[:last], sep, "")
	return head + "." + s[last+len(sep):]
}

// ParseCUIT extracts an 11-digit tax ID from a cell. When the cell's digits
// are exactly 11 they are returned bare; otherwise the original value is
// returned unchanged and the caller must tolerate a non-normalized CUIT.
func ParseCUIT(c valueobject.Cell) string {
	var raw string
	switch c.Kind {
	case valueobject.CellString:
		raw = c.Text
	case valueobject.CellNumber:
		raw = strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
	digits := strings.Join(digitsPattern.FindAllString(raw, -1), "")
	if len(digits) == 11 {
		return digits
	}
	return strings.TrimSpace(raw)
}

// ScanCUIT finds the first run of 11 consecutive digits in free text,
// typically a bank-movement concept. Returns "" when none is present.
func ScanCUIT(text string) string {
	return cuitPattern.FindString(text)
}

// ScanCBU finds the first run of 22 consecutive digits, the length of an
// Argentine bank account number. Returns "" when none is present.
func ScanCBU(text string) string {
	return cbuPattern.FindString(text)
}
