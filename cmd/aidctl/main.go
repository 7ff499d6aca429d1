// Command aidctl runs administrative tasks against the community aid
// database: schema migration, staff management and gateway credentials.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"communityaid/internal/infra"
)

var Version = "dev"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "aidctl",
		Short:         "Administrative commands for the community aid API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(promoteCmd())
	rootCmd.AddCommand(createStaffCmd())
	rootCmd.AddCommand(mpesaKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect opens a pool and a logged SQL runner for one command.
func connect(cmd *cobra.Command, name string) (*pgxpool.Pool, *infra.SQLRunner, error) {
	dbURL, err := cmd.Flags().GetString("database-url")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database-url flag: %w", err)
	}
	dbURL = strings.TrimSpace(dbURL)
	if dbURL == "" {
		dbURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dbURL == "" {
		return nil, nil, errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	pool, err := infra.OpenPool(ctx, dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	logger := cliLogger(name)
	return pool, infra.NewSQLRunner(pool, logger), nil
}

func cliLogger(name string) zerolog.Logger {
	return infra.NewLogger("cli").Level(zerolog.InfoLevel).With().Str("cmd", name).Logger()
}
