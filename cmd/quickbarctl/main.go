// Command quickbarctl is the operations tool for the quickbars database:
// apply migrations, inspect or reset a character's persisted quickbars,
// and run a scripted switching session end-to-end against a live database.
//
// Usage:
//
//	quickbarctl [-config path] migrate
//	quickbarctl [-config path] show <characterID>
//	quickbarctl [-config path] reset <characterID>
//	quickbarctl [-config path] simulate <characterID>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/udisondev/quickbars/internal/config"
	"github.com/udisondev/quickbars/internal/db"
)

const defaultConfigPath = "config/quickbars.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to quickbars.yaml")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, flag.Args()); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: quickbarctl [-config path] migrate|show|reset|simulate [characterID]")
}

func run(ctx context.Context, configPath string, args []string) error {
	if p := os.Getenv("QUICKBARS_CONFIG"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadQuickbars(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	switch args[0] {
	case "migrate":
		return runMigrate(ctx, cfg)
	case "show":
		id, err := characterArg(args)
		if err != nil {
			return err
		}
		return runShow(ctx, cfg, id)
	case "reset":
		id, err := characterArg(args)
		if err != nil {
			return err
		}
		return runReset(ctx, cfg, id)
	case "simulate":
		id, err := characterArg(args)
		if err != nil {
			return err
		}
		return runSimulate(ctx, cfg, id)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func characterArg(args []string) (int64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a characterID argument", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing characterID %q: %w", args[1], err)
	}
	return id, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runMigrate(ctx context.Context, cfg config.Quickbars) error {
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}

func runShow(ctx context.Context, cfg config.Quickbars, characterID int64) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	repo := db.NewQuickbarRepository(database.Pool())
	rec, err := repo.Load(ctx, characterID)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Printf("character %d: no quickbars persisted\n", characterID)
		return nil
	}

	fmt.Printf("character %d: %d quickbars, active %d\n",
		rec.CharacterID, len(rec.Slots), rec.ActiveIndex)
	for i, snapshot := range rec.Slots {
		marker := " "
		if i == rec.ActiveIndex {
			marker = "*"
		}
		if snapshot == "" {
			fmt.Printf("%s %2d: <empty>\n", marker, i)
			continue
		}
		fmt.Printf("%s %2d: %s\n", marker, i, snapshot)
	}
	return nil
}

func runReset(ctx context.Context, cfg config.Quickbars, characterID int64) error {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	repo := db.NewQuickbarRepository(database.Pool())
	if err := repo.DeleteByCharacter(ctx, characterID); err != nil {
		return err
	}
	slog.Info("quickbars reset", "characterID", characterID)
	return nil
}
