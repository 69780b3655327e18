package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Re1354/building-management-system/internal/config"
	"github.com/Re1354/building-management-system/internal/database"
	"github.com/Re1354/building-management-system/internal/logger"
	"github.com/Re1354/building-management-system/internal/metrics"
	"github.com/Re1354/building-management-system/internal/router"
	"github.com/Re1354/building-management-system/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	rootCmd := &cobra.Command{
		Use:           "rent-tracker",
		Short:         "Rent collection tracker API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update database tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, log, db, err := bootstrap(configPath)
				if err != nil {
					return err
				}
				defer func() { _ = log.Sync() }()
				log.Info("migrations applied")
				return closeDB(db)
			},
		},
		createAdminCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createAdminCmd(configPath *string) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer func() { _ = closeDB(db) }()

			users := service.NewUserService(db, cfg.Security.BcryptCost)
			user, err := users.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			log.Info("admin created", zap.String("id", user.ID), zap.String("email", user.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "admin display name")
	cmd.Flags().StringVar(&email, "email", "", "admin login email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// bootstrap loads config, builds the logger and opens a migrated database.
func bootstrap(configPath string) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Env, cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return cfg, log, db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func serve(configPath string) error {
	cfg, log, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() { _ = closeDB(db) }()

	r := router.SetupRouter(cfg, db, log, metrics.New("rent_tracker"))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
