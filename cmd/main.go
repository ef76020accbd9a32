package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"erpBack/internal/config"
	"erpBack/internal/logging"
	"erpBack/internal/repositories"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("error loading .env file")
	}

	addr := flag.String("addr", cfg.Server.Address, "HTTP network address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.ParseDialect(cfg.Database.Driver)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid database driver")
	}
	db, err := openDB(ctx, dialect, cfg.Database.URL, cfg.Database.Migrate, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	bus, redisBus, err := newCategoryBus(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("category events")
	}

	app := initializeApp(db, dialect, bus, cfg, logger)
	if err := app.registry.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial category load failed")
	}
	if redisBus != nil {
		startCategoryListener(ctx, redisBus, app.registry, logging.Component(logger, "category-events"))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     log.New(logger, "", 0),
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", *addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
