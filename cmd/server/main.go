/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the card transaction server. Handles
  configuration, store selection, seeding, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment (envconfig)
  2. Apply command-line flag overrides
  3. Open the selected store (memory or SQLite)
  4. Seed the initial account, history, and login users
  5. Seed the ID sequence past the log's highest existing ID
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides CARD_ENGINE_PORT)
  -store   "memory" or "sqlite" (overrides CARD_ENGINE_STORE_BACKEND)
  -db      SQLite database path (overrides CARD_ENGINE_STORE_DSN)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the store, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/card-engine/api"
	"github.com/warp/card-engine/auth"
	"github.com/warp/card-engine/config"
	"github.com/warp/card-engine/gateway"
	"github.com/warp/card-engine/ledger"
	memstore "github.com/warp/card-engine/ledger/store"
	"github.com/warp/card-engine/seed"
	"github.com/warp/card-engine/store/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	backend := flag.String("store", cfg.Store.Backend, "store backend: memory or sqlite")
	dbPath := flag.String("db", cfg.Store.DSN, "SQLite database path")
	flag.Parse()

	cards, txlog, closer, err := openStores(*backend, *dbPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to open store")
	}
	defer closer()

	ctx := context.Background()

	// Seed only a fresh store; a reopened SQLite file keeps its history.
	lastID, err := txlog.LastID(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to read transaction log")
	}
	if lastID == 0 {
		if err := seed.Accounts(ctx, cards, txlog); err != nil {
			logger.WithError(err).Fatal("failed to seed accounts")
		}
		lastID = seed.SequenceBase
	}

	seq := ledger.NewSequence(lastID)
	engine := ledger.NewEngine(cards, txlog, seq, logger)
	gw := gateway.New(engine, cfg.Gateway.IssuerPrefix, logger)
	query := ledger.NewQuery(cards, txlog)
	resolver := auth.NewStaticResolver(seed.Users())

	handler := api.NewHandler(gw, query, resolver, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":  *port,
			"store": *backend,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server stopped")
}

// openStores returns the configured store pair and a close function.
func openStores(backend, dbPath string) (ledger.CardStore, ledger.TransactionLog, func(), error) {
	switch backend {
	case config.BackendSQLite:
		st, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return st, st, func() { st.Close() }, nil
	case config.BackendMemory:
		return memstore.NewMemoryCards(), memstore.NewMemoryLog(), func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
