// Command seed migrates the remote trade ledger and inserts the example trades when it is empty.
package main

import (
	"context"
	"log"
	"time"

	"cloudtrade/internal/feature/trades/adapters"
	"cloudtrade/internal/feature/trades/usecase"
	"cloudtrade/internal/platform/config"
	"cloudtrade/internal/platform/db"
	"cloudtrade/internal/platform/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if !cfg.RemoteLedgerConfigured() {
		log.Fatal("LEDGER_DRIVER and LEDGER_DSN must be set")
	}

	gdb, err := db.Open(db.Config{Driver: cfg.Ledger.Driver, DSN: cfg.Ledger.DSN, ConnectTimeout: time.Minute}, &adapters.TradeModel{})
	if err != nil {
		log.Fatal("failed to open ledger:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := adapters.NewGormLedger(gdb).SeedIfEmpty(ctx, usecase.SeedTrades(time.Now()))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed ok (%d trades inserted)", n)
}
