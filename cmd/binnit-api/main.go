// README: Entry point; loads config, wires services, starts HTTP server and stats rebuild ticker.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayishathul-rinsha/Binnit/internal/config"
	httptransport "github.com/ayishathul-rinsha/Binnit/internal/http"
	"github.com/ayishathul-rinsha/Binnit/internal/infra"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/collector"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/earnings"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/matching"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pricing"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	switch {
	case cfg.Firebase.ProjectID != "":
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	case cfg.Auth.DevJWTSecret != "":
		logger.Warn("no firebase project configured, using the HS256 dev verifier")
		verifier = infra.NewDevVerifier(cfg.Auth.DevJWTSecret)
	default:
		log.Fatal("BINNIT_FIREBASE_PROJECT_ID or BINNIT_DEV_JWT_SECRET is required")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	statsSvc := stats.NewService(redisClient, dbPool, logger)
	pricingSvc := pricing.NewService()

	collectorStore := collector.NewStore(dbPool, redisClient)
	collectorSvc := collector.NewService(collectorStore, statsSvc)

	pickupStore := pickup.NewStore(dbPool)
	pickupSvc := pickup.NewService(pickupStore, pricingSvc, statsSvc, collectorSvc)

	matchingSvc := matching.NewService(pickupSvc, collectorSvc)

	earningsStore := earnings.NewStore(dbPool)
	earningsSvc := earnings.NewService(earningsStore)

	identityStore := identity.NewStore(dbPool)
	identitySvc := identity.NewService(identityStore, statsSvc)

	handler := httptransport.NewRouter(verifier, httptransport.Services{
		Pickup:    pickupSvc,
		Collector: collectorSvc,
		Matching:  matchingSvc,
		Earnings:  earningsSvc,
		Stats:     statsSvc,
		Identity:  identitySvc,
	}, logger)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	if cfg.Stats.RebuildMinutes > 0 {
		go runStatsRebuild(ctx, statsSvc, time.Duration(cfg.Stats.RebuildMinutes)*time.Minute, logger)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// runStatsRebuild periodically recomputes the dashboard counters from
// Postgres, healing any drift in the Redis cache.
func runStatsRebuild(ctx context.Context, svc *stats.Service, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Rebuild(ctx); err != nil {
				logger.Warn("stats rebuild failed", "error", err)
			}
		}
	}
}
