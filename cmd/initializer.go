package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"erpBack/internal/catalog"
	"erpBack/internal/catalog/events"
	"erpBack/internal/catalog/ws"
	"erpBack/internal/config"
	"erpBack/internal/handlers"
	"erpBack/internal/logging"
	"erpBack/internal/repositories"
	"erpBack/internal/services"
)

// categoryBus is satisfied by both the in-process and the Redis event bus.
type categoryBus interface {
	Subscribe(h catalog.Handler)
	Publish(ctx context.Context, ev catalog.Event) error
}

type application struct {
	logger zerolog.Logger
	db     *sql.DB

	registry    *catalog.Registry
	categoryBus categoryBus
	categoryHub *ws.CategoryHub

	categoryRepo         *repositories.CategoryRepository
	categoryService      *services.CategoryService
	categoryHandler      *handlers.CategoryHandler
	inventoryItemRepo    *repositories.InventoryItemRepository
	inventoryItemService *services.InventoryItemService
	inventoryItemHandler *handlers.InventoryItemHandler
}

func initializeApp(db *sql.DB, dialect repositories.Dialect, bus categoryBus, cfg config.Config, logger zerolog.Logger) *application {
	// Repositories
	categoryRepo := repositories.NewCategoryRepository(db, dialect)
	inventoryItemRepo := repositories.NewInventoryItemRepository(db, dialect)

	registry := catalog.NewRegistry(categoryRepo, logging.Printf{Logger: logging.Component(logger, "catalog")})
	categoryHub := ws.NewCategoryHub(logging.Printf{Logger: logging.Component(logger, "category-ws")}, cfg.CORS.AllowedOrigins)
	bus.Subscribe(registry.HandleEvent)
	bus.Subscribe(categoryHub.HandleEvent)

	// Services
	categoryService := &services.CategoryService{
		CategoryRepo:      categoryRepo,
		Registry:          registry,
		Notifier:          bus,
		DefaultAttributes: cfg.Catalog.DefaultAttributes,
		MaxAttributes:     cfg.Catalog.MaxAttributes,
		Log:               logging.Component(logger, "categories"),
	}
	inventoryItemService := &services.InventoryItemService{
		ItemRepo:   inventoryItemRepo,
		Registry:   registry,
		BusinessID: cfg.Inventory.BusinessID,
		Log:        logging.Component(logger, "inventory"),
	}

	// Handlers
	categoryHandler := &handlers.CategoryHandler{Service: categoryService, Log: logger}
	inventoryItemHandler := &handlers.InventoryItemHandler{Service: inventoryItemService, Log: logger}

	return &application{
		logger:               logger,
		db:                   db,
		registry:             registry,
		categoryBus:          bus,
		categoryHub:          categoryHub,
		categoryRepo:         categoryRepo,
		categoryService:      categoryService,
		categoryHandler:      categoryHandler,
		inventoryItemRepo:    inventoryItemRepo,
		inventoryItemService: inventoryItemService,
		inventoryItemHandler: inventoryItemHandler,
	}
}

func openDB(ctx context.Context, dialect repositories.Dialect, dsn string, migrate bool, logger zerolog.Logger) (*sql.DB, error) {
	db, err := repositories.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := repositories.ApplySchema(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info().Str("driver", string(dialect)).Msg("schema applied")
	}
	logger.Info().Str("driver", string(dialect)).Msg("successfully connected to database")
	return db, nil
}

// newCategoryBus picks Redis pub/sub when an address is configured so that
// every instance sees category changes, and an in-process bus otherwise.
func newCategoryBus(ctx context.Context, cfg config.Config, logger zerolog.Logger) (categoryBus, *events.RedisBus, error) {
	if cfg.Redis.Addr == "" {
		logger.Info().Msg("redis not configured, category events stay in process")
		return events.NewLocal(), nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	bus := events.NewRedisBus(rdb, cfg.Redis.Channel, logging.Printf{Logger: logging.Component(logger, "category-events")})
	return bus, bus, nil
}
