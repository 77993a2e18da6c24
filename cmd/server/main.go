package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cloudtrade/internal/app/di"
	"cloudtrade/internal/app/router"
	tradeadapters "cloudtrade/internal/feature/trades/adapters"
	"cloudtrade/internal/platform/config"
	"cloudtrade/internal/platform/db"
	"cloudtrade/internal/platform/kvstore"
	"cloudtrade/internal/platform/logger"
	infraredis "cloudtrade/internal/platform/redis"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[WARN] Redis unavailable. Running without market data cache: %v", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// リモート台帳（任意）
	var gdb *gorm.DB
	if cfg.RemoteLedgerConfigured() {
		conn, err := db.Open(db.Config{Driver: cfg.Ledger.Driver, DSN: cfg.Ledger.DSN}, &tradeadapters.TradeModel{})
		if err != nil {
			log.Printf("[WARN] Remote ledger unavailable. REAL mode trades will not be persisted: %v", err)
		} else {
			gdb = conn
		}
	} else {
		log.Println("[INFO] LEDGER_DRIVER/LEDGER_DSN not set. REAL mode uses the stub ledger.")
	}

	// MOCKモードの台帳
	store := kvstore.NewMemoryStore(cfg.Ledger.MockFile)
	defer func() {
		if err := store.Flush(); err != nil {
			log.Println("[ERROR] Failed to save mock ledger:", err)
		}
	}()

	if !cfg.RealModeReady() {
		log.Println("[WARN] FINNHUB_API_KEY is not set. Only MOCK mode is available.")
	}

	handlers := di.NewHandlers(ctx, cfg, di.Infra{
		Redis:    rdb,
		DB:       gdb,
		DBDriver: cfg.Ledger.Driver,
		Store:    store,
		Clock:    clock.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Printf("[INFO] listening on %s", srv.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] Graceful shutdown failed:", err)
	}
}
