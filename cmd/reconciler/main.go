package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"movement-reconciliation/internal/config"
	"movement-reconciliation/internal/domain"
	"movement-reconciliation/internal/gateway"
	"movement-reconciliation/internal/ledger"
	"movement-reconciliation/internal/logger"
	"movement-reconciliation/internal/usecase"
)

type output struct {
	Report        *domain.ReconciliationReport `json:"report"`
	Notifications []gateway.Notification       `json:"notifications"`
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "reconciler.toml", "Path to the TOML config file")
	accountID := flag.String("account", "", "Account id (required)")
	currency := flag.String("currency", "EUR", "Account currency")
	balanceStr := flag.String("balance", "", "Current account balance reported by the bank (required)")
	scrapedPath := flag.String("scraped", "", "Path to the scraped movements CSV file (required)")
	fromStr := flag.String("from", "", "Start date of the scraped window (YYYY-MM-DD) (required)")
	toStr := flag.String("to", "", "End date of the scraped window (YYYY-MM-DD), defaults to today")
	dbPath := flag.String("db", "", "SQLite ledger path, overrides the config; empty runs against an in-memory ledger")
	flag.Parse()

	if *accountID == "" || *balanceStr == "" || *scrapedPath == "" || *fromStr == "" {
		fmt.Fprintln(os.Stderr, "Error: flags -account, -balance, -scraped and -from are required.")
		flag.Usage()
		return 1
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if flagSet("db") {
		cfg.Storage.Path = *dbPath
	}

	log := logger.New(cfg.Logging.Level)

	balance, err := decimal.NewFromString(*balanceStr)
	if err != nil {
		log.Error().Err(err).Str("balance", *balanceStr).Msg("invalid balance")
		return 1
	}
	dateFrom, err := time.Parse(domain.DateLayout, *fromStr)
	if err != nil {
		log.Error().Err(err).Msg("invalid start date")
		return 1
	}
	dateTo := domain.TruncateDay(time.Now())
	if *toStr != "" {
		if dateTo, err = time.Parse(domain.DateLayout, *toStr); err != nil {
			log.Error().Err(err).Msg("invalid end date")
			return 1
		}
	}
	minAllowed, err := cfg.MinAllowedDate()
	if err != nil {
		log.Error().Err(err).Msg("invalid config")
		return 1
	}

	store, closeStore, err := openLedger(cfg.Storage.Path, log)
	if err != nil {
		log.Error().Err(err).Msg("could not open ledger")
		return 1
	}
	defer closeStore()

	notifier := gateway.NewRecordingNotifier(gateway.NewLogNotifier(log))
	uc := usecase.NewReconciliationUseCase(store, gateway.NewCSVMovementSource(), notifier, usecase.Options{
		OffsetLimitDays:    cfg.Reconciliation.OffsetLimitDays,
		MinAllowedDateFrom: minAllowed,
		AutoFix:            cfg.Reconciliation.AutoFix,
		ApplyWrites:        cfg.Reconciliation.ApplyWrites,
		Logger:             log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := uc.Reconcile(ctx, usecase.ReconcileRequest{
		Account: domain.AccountSnapshot{
			AccountID: *accountID,
			Currency:  *currency,
			Balance:   balance,
		},
		ScrapedPath: *scrapedPath,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	})
	if err != nil {
		log.Error().Err(err).Msg("reconciliation failed")
		return 1
	}

	out, err := json.MarshalIndent(output{Report: report, Notifications: notifier.Notifications()}, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to generate JSON report")
		return 1
	}
	fmt.Println(string(out))

	if !report.FinalCode.IsConsistent() {
		return 1
	}
	return 0
}

func openLedger(path string, log zerolog.Logger) (usecase.LedgerRepository, func(), error) {
	if path == "" {
		log.Info().Msg("no storage path, using in-memory ledger")
		return ledger.NewMemoryStore(), func() {}, nil
	}
	store, err := ledger.New(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ledger")
		}
	}, nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
