package main

import (
	"fmt"
	"os"

	"clinic-booking-service/cmd/bootstrap"
	"clinic-booking-service/config"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/infrastructure/cache"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic-booking",
		Short:         "Clinic appointment booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	bootstrap.SetupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DB)
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DB, steps)
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage access tokens",
	}

	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an active access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawUserID, _ := cmd.Flags().GetString("user")
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")

			userID, err := uuid.Parse(rawUserID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			redisClient, err := cache.NewRedisClient(cfg.Redis)
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			defer redisClient.Close()

			issuer := service.NewTokenIssuer(jwt.NewJWTService(cfg.JWT), service.NewRedisTokenStore(redisClient), logrus.StandardLogger())
			token, err := issuer.Issue(cmd.Context(), userID, email, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().String("user", "", "User ID the token is issued for")
	issueCmd.Flags().String("email", "", "Email claim")
	issueCmd.Flags().String("role", entity.RolePatient, "Role claim (admin, doctor, patient)")
	_ = issueCmd.MarkFlagRequired("user")
	cmd.AddCommand(issueCmd)

	return cmd
}
