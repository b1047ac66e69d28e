package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/auth"
	"github.com/dmitrijs2005/budgetkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/budgetkeeper/internal/cli"
	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
	"github.com/dmitrijs2005/budgetkeeper/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	rm := repomanager.NewSQLiteRepositoryManager()
	db, err := storage.Open(ctx, cfg.DatabasePath, rm, logger)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	hasher := cryptox.NewArgon2Hasher(cryptox.Params{
		Time:      cfg.HashTime,
		MemoryKiB: cfg.HashMemoryKiB,
		Threads:   cfg.HashThreads,
	})
	// a nil secret makes the issuer generate a random per-process key
	tickets := auth.NewIssuer(nil, cfg.RecoveryTicketTTL)

	app := cli.NewApp(
		services.NewAuthService(db, rm, hasher, tickets, logger),
		services.NewLedgerService(db, rm, logger),
		logger,
		os.Stdin,
		os.Stdout,
	)
	app.Run(ctx)

}
