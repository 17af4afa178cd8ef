// Package main implements the shardq demo server: an in-process sharded,
// replicated record store behind a small JSON HTTP surface.
//
// The server owns one coordinator with a fixed shard set. Records can be
// loaded from a tab-separated file at startup and saved over HTTP; queries
// run the two-phase distributed merge and return globally correct pages.
//
// Endpoints:
//   - POST /records       - Save one record
//   - POST /query         - Paginated, filtered, sorted query
//   - GET  /status        - Per-shard health and record counts
//   - POST /shards/toggle - Flip one shard's online flag
//   - GET  /health        - Liveness check
//
// Configuration:
//   - SHARDQ_ADDR:           Listen address (default: ":8080")
//   - SHARDQ_SHARDS:         Shard count (default: "3")
//   - SHARDQ_REPLICATION:    Copies per record (default: "2")
//   - SHARDQ_DATA:           Optional TSV file loaded at startup
//   - SHARDQ_FAULTS:         Shards the chaos loop keeps offline (default: "0", disabled)
//   - SHARDQ_FAULT_INTERVAL: Chaos reshuffle interval (default: "10s")
//
// Example usage:
//
//	SHARDQ_SHARDS=5 SHARDQ_REPLICATION=2 SHARDQ_DATA=people.tsv ./shardq
//
//	curl -X POST localhost:8080/query -d '{
//	  "page": 0, "page_size": 2,
//	  "filter": [{"field": "age", "op": "gt", "value": {"k": 1, "i": 30}}],
//	  "sort": [{"field": "id"}]
//	}'
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dreamware/shardq/internal/coordinator"
	"github.com/dreamware/shardq/internal/ingest"
)

// logFatal is a variable to allow intercepting fatal exits in tests.
var logFatal = func(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	addr := getenv("SHARDQ_ADDR", ":8080")
	shards := getenvInt("SHARDQ_SHARDS", 3)
	replication := getenvInt("SHARDQ_REPLICATION", 2)

	coord, err := coordinator.New(shards, replication, coordinator.WithLogger(logger))
	if err != nil {
		logFatal("invalid configuration", "error", err)
		return
	}
	logger.Info("coordinator ready", "shards", shards, "replication", replication)

	if path := os.Getenv("SHARDQ_DATA"); path != "" {
		recs, err := ingest.ReadFile(path)
		if err != nil {
			logFatal("loading records", "path", path, "error", err)
			return
		}
		for _, r := range recs {
			coord.Save(r)
		}
		logger.Info("records loaded", "path", path, "records", len(recs))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if faults := getenvInt("SHARDQ_FAULTS", 0); faults > 0 {
		interval, err := time.ParseDuration(getenv("SHARDQ_FAULT_INTERVAL", "10s"))
		if err != nil {
			logFatal("invalid fault interval", "error", err)
			return
		}
		inj := coordinator.NewFaultInjector(coord, faults, interval)
		inj.Start(ctx)
		defer inj.Stop()
		logger.Info("fault injection enabled", "faults", faults, "interval", interval)
	}

	srv := newServer(coord, logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("shardq listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logFatal("listen", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	logger.Info("shardq stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logFatal("invalid integer env var", "key", key, "value", v)
		return fallback
	}
	return n
}
