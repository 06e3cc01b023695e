package main

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/amacwhirter/hedera-json-rpc-relay/internal/cache"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/config"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/ethapi"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/logger"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/metrics"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/mirror"
	"github.com/amacwhirter/hedera-json-rpc-relay/internal/transport"
)

func main() {
	app := &cli.App{
		Name:  "relay",
		Usage: "Ethereum JSON-RPC relay over a mirror node and a native consensus client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen-addr", EnvVars: []string{"LISTEN_ADDR"}},
			&cli.StringFlag{Name: "mirror-base-url", EnvVars: []string{"MIRROR_BASE_URL"}},
			&cli.Int64Flag{Name: "chain-id", EnvVars: []string{"CHAIN_ID"}},
			&cli.Int64Flag{Name: "max-fee-history-block-count", EnvVars: []string{"MAX_FEE_HISTORY_BLOCK_COUNT"}},
			&cli.StringFlag{Name: "metrics-addr", EnvVars: []string{"METRICS_ADDR"}},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("relay exited: %v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	if v := c.String("listen-addr"); v != "" {
		cfg.ListenAddr = v
	}
	if v := c.String("mirror-base-url"); v != "" {
		cfg.MirrorBaseURL = v
	}
	if v := c.Int64("chain-id"); v != 0 {
		cfg.ChainID = v
	}
	if v := c.Int64("max-fee-history-block-count"); v != 0 {
		cfg.MaxFeeHistoryBlockCount = v
	}
	if v := c.String("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}

	logger.Info("Starting relay")
	logger.Info("Mirror base URL: %s", cfg.MirrorBaseURL)
	logger.Info("Listen address: %s", cfg.ListenAddr)
	logger.Info("Chain ID: %d", cfg.ChainID)

	// ConsensusPort and Precheck have no production implementation in
	// this module (their concrete client — auth, signing, node
	// selection — is explicitly out of scope). A deployment wires a
	// real implementation in before serving traffic. With Consensus nil,
	// the first call that reaches it panics (sendRawTransaction,
	// getBalance, getCode's bytecode fallback, getTransactionCount,
	// eth_call, or the gas-price fallback); with Precheck nil,
	// sendRawTransaction skips the pre-check.
	dispatcher := &ethapi.Dispatcher{
		Mirror:                  mirror.NewHTTPClient(cfg.MirrorBaseURL),
		Cache:                   cache.New(cache.GasPriceTTL),
		ChainID:                 big.NewInt(cfg.ChainID),
		MaxFeeHistoryBlockCount: cfg.MaxFeeHistoryBlockCount,
	}

	httpHandler := transport.NewHTTPHandler(dispatcher)

	mux := http.NewServeMux()
	mux.Handle("/", httpHandler)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("JSON-RPC endpoint listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("relay server error: %v", err)
			os.Exit(1)
		}
	}()

	go func() {
		logger.Info("Metrics/health endpoint listening on %s", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Shutdown(ctx)
	metricsServer.Shutdown(ctx)
	logger.Info("Stopped")
	return nil
}
