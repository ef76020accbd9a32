// Command specctl runs maintenance tasks against the inventory catalog.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"erpBack/internal/config"
	"erpBack/internal/logging"
	"erpBack/internal/repositories"
)

type env struct {
	cfg     config.Config
	logger  zerolog.Logger
	db      *sql.DB
	dialect repositories.Dialect
}

var rootCmd = &cobra.Command{
	Use:           "specctl",
	Short:         "Inventory catalog maintenance",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// connect loads the server configuration and opens the database.
func connect(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	dialect, err := repositories.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	db, err := repositories.Open(ctx, dialect, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db, dialect: dialect}, nil
}
