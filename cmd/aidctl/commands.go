package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"communityaid/internal/adapter/repo"
	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/infra/credentials"
	"communityaid/internal/resource"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, sql, err := connect(cmd, "migrate")
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			if err := infra.Migrate(ctx, sql); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func promoteCmd() *cobra.Command {
	var demote bool
	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant (or with --demote revoke) administrator rights",
		Long: `Grant or revoke the staff flag that unlocks administrator actions.

Examples:
  aidctl promote amina
  aidctl promote amina --demote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username is required")
			}
			pool, sql, err := connect(cmd, "promote")
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			err = repo.NewUserRepository(sql).SetStaff(ctx, username, !demote)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("user %q not found", username)
			}
			if err != nil {
				return err
			}
			state := "staff"
			if demote {
				state = "regular user"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now a %s\n", username, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&demote, "demote", false, "revoke staff rights instead of granting them")
	return cmd
}

func createStaffCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "create-staff <username>",
		Short: "Create an administrator account (password from AIDCTL_PASSWORD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv("AIDCTL_PASSWORD")
			if password == "" {
				return errors.New("AIDCTL_PASSWORD is required")
			}
			pool, sql, err := connect(cmd, "create-staff")
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			users := repo.NewUserRepository(sql)
			user, err := resource.Register(ctx, users, resource.Registration{Username: args[0], Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := users.SetStaff(ctx, user.Username, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created staff user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	return cmd
}

func mpesaKeyCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "mpesa-key",
		Short: "Store the payment gateway API key in the database",
		Long: `Store the payment gateway API key so servers started without
MPESA_API_KEY can still reach the gateway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key = strings.TrimSpace(key)
			if key == "" {
				key = strings.TrimSpace(os.Getenv("MPESA_API_KEY"))
			}
			if key == "" {
				return errors.New("API key is required via --key or MPESA_API_KEY")
			}
			pool, sql, err := connect(cmd, "mpesa-key")
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := credentials.NewStore(sql).SetMpesaAPIKey(ctx, key); err != nil {
				return fmt.Errorf("failed to persist mpesa api key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "mpesa api key stored")
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "gateway API key (defaults to MPESA_API_KEY)")
	return cmd
}
