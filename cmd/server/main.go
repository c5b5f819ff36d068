package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm/logger"

	"stratify/docs"
	"stratify/internal/cache"
	"stratify/internal/config"
	"stratify/internal/db"
	"stratify/internal/handler"
	"stratify/internal/repository"
	"stratify/internal/router"
	"stratify/internal/service"
)

// @title Stratify Portfolio API
// @version 1.0
// @description CRUD API over users, sectors, assets, portfolios, positions, transactions, watchlists, alerts, scenario results and audit events.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))

	gormLevel := logger.Warn
	if strings.EqualFold(cfg.LogLevel, "debug") {
		gormLevel = logger.Info
	}
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        gormLevel,
	})
	if err != nil {
		e.Logger.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		e.Logger.Warn("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			e.Logger.Fatalf("reset: %v", err)
		}
	}
	if cfg.AutoMigrate || cfg.ResetDB {
		if err := db.Migrate(gormDB); err != nil {
			e.Logger.Fatalf("%v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient == nil {
		e.Logger.Info("REDIS_ADDR not set, detail caching disabled")
	}

	repos := repository.New(gormDB)
	services := service.New(repos, cacheClient, cfg.CacheTTL)

	router.Register(e, cfg, router.Handlers{
		Asset:       handler.NewAssetHandler(services.Assets),
		Sector:      handler.NewSectorHandler(services.Sectors),
		Portfolio:   handler.NewPortfolioHandler(services.Portfolios),
		Position:    handler.NewPositionHandler(services.Positions),
		Transaction: handler.NewTransactionHandler(services.Transactions),
		User:        handler.NewUserHandler(services.Users),
		Watchlist:   handler.NewWatchlistHandler(services.Watchlists),
		Alert:       handler.NewAlertHandler(services.Alerts),
		Scenario:    handler.NewScenarioHandler(services.Scenarios),
		Audit:       handler.NewAuditHandler(services.AuditEvents),
		Health:      handler.NewHealthHandler(repos, cacheClient),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	e.Logger.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Errorf("shutdown: %v", err)
	}
	_ = cacheClient.Close()
	if err := db.Close(gormDB); err != nil {
		e.Logger.Errorf("close database: %v", err)
	}
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
