// Package main is the entry point for the bank reconciliation CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/conciliador/backend/config"
	"github.com/conciliador/backend/internal/infra/dependency"
	"github.com/conciliador/backend/internal/infra/redis"
	"github.com/conciliador/backend/internal/integration/spreadsheet"
)

// bankFlag collects repeatable -bank Name=path arguments in order. Order
// matters: each statement is only matched against what earlier banks left
// pending.
type bankFlag struct {
	names []string
	paths []string
}

func (b *bankFlag) String() string {
	return strings.Join(b.names, ",")
}

func (b *bankFlag) Set(value string) error {
	name, path, ok := strings.Cut(value, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected Name=path, got %q", value)
	}
	b.names = append(b.names, name)
	b.paths = append(b.paths, path)
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		salesPath     = flag.String("sales", "", "sales ledger file (csv or xlsx)")
		purchasesPath = flag.String("purchases", "", "purchases ledger file (csv or xlsx)")
		outPath       = flag.String("out", "", "write match results to this xlsx file")
		saveSession   = flag.Bool("save-session", false, "persist the session snapshot to Redis")
		banks         bankFlag
	)
	flag.Var(&banks, "bank", "bank statement as Name=path, repeatable; processed in order")
	flag.Parse()

	if *salesPath == "" || *purchasesPath == "" || len(banks.names) == 0 {
		fmt.Fprintln(os.Stderr, "usage: reconciler -sales ventas.xlsx -purchases compras.xlsx -bank Galicia=galicia.xlsx [-bank Santander=santander.xlsx] [-out resultados.xlsx]")
		os.Exit(2)
	}

	cfg := config.Load()
	if level := parseLogLevel(cfg.App.LogLevel); level != slog.LevelInfo {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})))
	}
	slog.Info("Starting reconciler",
		"environment", cfg.App.Environment,
		"banks", banks.names,
	)

	// Connect to Redis for session persistence; run without it on failure.
	var conn *redis.Connection
	if c, err := redis.NewConnection(&cfg.Redis); err != nil {
		slog.Warn("Redis connection failed, session snapshots disabled",
			"error", err,
		)
	} else {
		conn = c
		defer func() {
			if err := conn.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
	}

	injector := dependency.NewInjector(cfg, conn)

	salesGrid, err := spreadsheet.LoadFile(*salesPath)
	if err != nil {
		slog.Error("Failed to load sales file", "path", *salesPath, "error", err)
		os.Exit(1)
	}
	purchasesGrid, err := spreadsheet.LoadFile(*purchasesPath)
	if err != nil {
		slog.Error("Failed to load purchases file", "path", *purchasesPath, "error", err)
		os.Exit(1)
	}

	session := injector.NewSession()
	if err := session.Initialize(salesGrid, purchasesGrid); err != nil {
		slog.Error("Failed to initialize session", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for i, name := range banks.names {
		grid, err := spreadsheet.LoadFile(banks.paths[i])
		if err != nil {
			slog.Error("Failed to load bank statement", "bank", name, "error", err)
			os.Exit(1)
		}
		if _, err := session.ProcessBank(grid, name); err != nil {
			slog.Error("Bank pass failed", "bank", name, "error", err)
			os.Exit(1)
		}
	}

	report, err := session.Finalize()
	if err != nil {
		slog.Error("Failed to generate final result", "error", err)
		os.Exit(1)
	}
	slog.Info("Reconciliation finished",
		"session", session.ID(),
		"matched", report.TotalMatched,
		"pending", report.TotalPending,
		"match_rate", fmt.Sprintf("%.2f", report.MatchRate),
		"steps", len(report.Steps),
	)

	if *outPath != "" {
		snapshot := session.Snapshot()
		results := append(snapshot.Matched, snapshot.Pending...)
		data, err := injector.Exporter.Export(ctx, results)
		if err != nil {
			slog.Error("Failed to export results", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			slog.Error("Failed to write results file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Results exported", "path", *outPath, "rows", len(results))
	}

	if *saveSession {
		if injector.SessionStore == nil {
			slog.Warn("Session persistence requested but Redis is unavailable")
		} else if err := injector.SessionStore.Save(ctx, session.Snapshot()); err != nil {
			slog.Error("Failed to persist session snapshot", "error", err)
			os.Exit(1)
		} else {
			slog.Info("Session snapshot persisted", "session", session.ID())
		}
	}
}
