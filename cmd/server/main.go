// Package main is the entry point for the lost & found bounty server.
// It serves a REST API over a LostAndFound contract deployed on an
// EVM chain: aggregated item views, per-user profiles, a top-finders
// leaderboard, and an optional authenticated transaction relay.
//
// Architecture:
//   - The contract is the sole durable store; all server state is a
//     read-only projection rebuilt wholesale from chain reads
//   - A background worker refreshes the aggregated snapshot periodically
//     and after each relayed write settles
//   - Writes are signed with a configured key, receipt-polled to
//     settlement, and never retried
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/chain"
	"github.com/jirassssa/lostfound-server/internal/config"
	"github.com/jirassssa/lostfound-server/internal/handlers"
	"github.com/jirassssa/lostfound-server/internal/middleware"
	"github.com/jirassssa/lostfound-server/internal/services"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting Lost & Found Bounty Server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"chain_id", cfg.ChainID,
		"contract", cfg.ContractAddress,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the RPC node; this also verifies the chain id
	client, err := chain.Dial(ctx, cfg.RPCURL, cfg.ChainID)
	if err != nil {
		sugar.Fatalf("Failed to connect to chain: %v", err)
	}
	defer client.Close()

	contract := chain.NewContract(client, common.HexToAddress(cfg.ContractAddress), sugar)

	// The relay is optional: without a signer key the server is read-only
	var ledgerWriter services.LedgerWriter
	if cfg.SignerKey != "" {
		writer, err := chain.NewWriter(contract, cfg.SignerKey, cfg.ChainID, sugar)
		if err != nil {
			sugar.Fatalf("Failed to build transaction writer: %v", err)
		}
		ledgerWriter = writer
	} else {
		sugar.Info("No signer key configured, transaction relay disabled")
	}

	// Initialize services
	aggregator := services.NewAggregatorService(contract, cfg.FetchConcurrency, sugar)
	profileSvc := services.NewProfileService(contract, sugar)
	actionSvc := services.NewActionService(ledgerWriter, cfg.MinBountyWei, cfg.SettleTimeout, aggregator.RefreshAsync, sugar)
	refreshWorker := services.NewRefreshWorker(aggregator, sugar)

	// Start background snapshot refresh
	go refreshWorker.Start(ctx, cfg.RefreshInterval)

	// Initialize handlers
	itemHandler := handlers.NewItemHandler(aggregator, profileSvc, cfg.PlatformFeeBps, sugar)
	actionHandler := handlers.NewActionHandler(actionSvc, sugar)
	healthHandler := handlers.NewHealthHandler(contract, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Read endpoints (public)
		r.Get("/item/{id}", itemHandler.Get)
		r.Get("/itemCount", itemHandler.Count)
		r.Get("/items/all", itemHandler.All)
		r.Get("/items", itemHandler.List)
		r.Get("/leaderboard", itemHandler.Leaderboard)
		r.Get("/profile", itemHandler.Profile)
		r.Get("/profile/{address}", itemHandler.Profile)

		// Transaction relay, signs with the server key
		r.Route("/actions", func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))
			r.Post("/report", actionHandler.Report)
			r.Post("/claim", actionHandler.Claim)
			r.Post("/cancel", actionHandler.Cancel)
			r.Post("/increase", actionHandler.Increase)
			r.Post("/confirm-finder", actionHandler.ConfirmFinder)
			r.Get("/{id}", actionHandler.Get)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
