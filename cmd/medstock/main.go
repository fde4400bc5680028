package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/avandijk/medstock/internal/api"
	"github.com/avandijk/medstock/internal/cache"
	"github.com/avandijk/medstock/internal/config"
	"github.com/avandijk/medstock/internal/db"
	"github.com/avandijk/medstock/internal/mail"
	"github.com/avandijk/medstock/internal/store"
	"github.com/avandijk/medstock/internal/supply"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: medstock <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: medstock <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "medstock.sqlite3", "path to SQLite database file")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		database.Close()
		os.Remove(*dbPath)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database created: %s\n", *dbPath)
	fmt.Println("Schema initialized.")
}

func cmdServe() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	// Auto-init the database on first run.
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		slog.Info("database does not exist, creating", "path", cfg.DBPath)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations (idempotent).
	if err := db.Migrate(database); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	st := store.New(database, cache.New(cfg.CacheTTL),
		store.WithUniqueLocations(cfg.UniqueLocations))
	svc := supply.NewService(st, newTransport(cfg))

	handler := api.LoggingMiddleware(api.NewRouter(st, svc))

	slog.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newTransport picks the mail transport from configuration: SMTP when a host
// is set, otherwise the HTTP relay, otherwise a log-only fallback.
func newTransport(cfg *config.Config) mail.Transport {
	switch {
	case cfg.SMTPHost != "":
		slog.Info("using SMTP mail transport", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return &mail.SMTPTransport{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}
	case cfg.RelayURL != "":
		slog.Info("using HTTP relay mail transport", "url", cfg.RelayURL)
		return mail.NewRelayTransport(cfg.RelayURL, cfg.RelayAPIKey, cfg.MailFrom)
	default:
		slog.Warn("no mail transport configured, emails will only be logged")
		return mail.LogTransport{}
	}
}
