package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"superhero-pets/internal/adapters/auth/jwtauth"
	pg "superhero-pets/internal/adapters/storage/postgres"
	"superhero-pets/internal/config"
	"superhero-pets/internal/middleware"
	"superhero-pets/internal/platform/logger"
	"superhero-pets/internal/router"
)

// @title Superhero Pets API
// @version 1.0
// @description API de superhéroes y mascotas virtuales: login, adopción y actividades de cuidado.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	authn, err := jwtauth.New(jwtauth.Config{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL})
	if err != nil {
		log.Error("jwt setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.Store() == config.StorePostgres {
		if cfg.AutoMigrate {
			v, err := pg.Migrate(cfg.DatabaseDSN)
			if err != nil {
				log.Error("migrations failed", map[string]any{"error": err.Error()})
				os.Exit(1)
			}
			log.Info("migrations applied", map[string]any{"version": v})
		}

		db, err = pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
	}
	log.Info("store selected", map[string]any{"store": string(cfg.Store())})

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginBurst, log)
	stop := make(chan struct{})
	limiter.StartPruning(time.Minute, 10*time.Minute, stop)

	r := router.NewRouter(router.Options{
		AuthVerifier:   authn,
		TokenIssuer:    authn,
		DB:             db,
		PetsFile:       cfg.PetsFile,
		HeroesFile:     cfg.HeroesFile,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins(),
		LoginLimiter:   limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}
