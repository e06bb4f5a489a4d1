package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/alerts"
	"github.com/rogerio-castellano/erp-analytics/internal/auth"
	"github.com/rogerio-castellano/erp-analytics/internal/cache"
	"github.com/rogerio-castellano/erp-analytics/internal/config"
	"github.com/rogerio-castellano/erp-analytics/internal/db"
	"github.com/rogerio-castellano/erp-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/erp-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/erp-analytics/internal/http/router"
	"github.com/rogerio-castellano/erp-analytics/internal/redissvc"
	"github.com/rogerio-castellano/erp-analytics/internal/repo"
)

// @title ERP Analytics API
// @version 1.0
// @description REST API for products, orders, suppliers and the analytics derived from them.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Could not load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	rl.Configure(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go rl.StartVisitorCleanupLoop(ctx)

	handlers.SetAnalyticsOptions(handlers.AnalyticsOptions{
		DefaultWindow: cfg.Analytics.DefaultWindow,
		TopProducts:   cfg.Analytics.TopProducts,
	})

	var events alerts.EventLog = alerts.NewMemoryLog()
	handlers.SetReportCache(cache.NewMemoryReportCache(cfg.Cache.TTL))
	if cfg.Redis.Enabled {
		redisService, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer redisService.Close()

		handlers.SetReportCache(cache.NewRedisReportCache(redisService, cfg.Cache.TTL))
		events = alerts.NewRedisLog(redisService)
	}

	notifier := alerts.NewNotifier(events, alerts.SMTPConfig{
		From:         cfg.Alerts.From,
		To:           cfg.Alerts.To,
		Server:       cfg.Alerts.SMTPServer,
		Port:         cfg.Alerts.SMTPPort,
		User:         cfg.Alerts.SMTPUser,
		Password:     cfg.Alerts.SMTPPassword,
		AuthDisabled: cfg.Alerts.SMTPAuthDisabled,
	})
	handlers.SetLowStockRecorder(notifier)
	if cfg.Alerts.Enabled {
		go notifier.StartDailyDigest(ctx, cfg.Alerts.Interval)
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		if cfg.Database.Migrate {
			if err := db.Migrate(database); err != nil {
				log.Fatal("❌ Could not migrate database:", err)
			}
		}

		handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
		handlers.SetOrderRepo(repo.NewPostgresOrderRepository(database))
		handlers.SetSupplierRepo(repo.NewPostgresSupplierRepository(database))
		handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
		handlers.SetSnapshotRepo(repo.NewPostgresSnapshotRepository(database))
	default:
		store := repo.NewInMemoryStore()
		handlers.SetProductRepo(store.Products())
		handlers.SetOrderRepo(store.Orders())
		handlers.SetSupplierRepo(store.Suppliers())
		handlers.SetUserRepo(repo.NewInMemoryUserRepository())
		handlers.SetSnapshotRepo(store)
		log.Println("⚠️ Using in-memory storage, data is lost on restart")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("❌ Shutdown failed: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
