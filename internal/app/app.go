// Package app wires configuration, storage and services into a single
// application core shared by the server entrypoint and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/services/account"
	"github.com/beehive/dashboard/internal/services/analytics"
	"github.com/beehive/dashboard/internal/services/balance"
	"github.com/beehive/dashboard/internal/services/movement"
	"github.com/beehive/dashboard/internal/services/planned"
	"github.com/beehive/dashboard/internal/services/statistics"
	"github.com/beehive/dashboard/internal/services/validation"
	"github.com/beehive/dashboard/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	BalanceEngine     interfaces.BalanceEngine
	ValidationGuard   interfaces.ValidationGuard
	AccountService    interfaces.AccountService
	MovementService   interfaces.MovementService
	PlannedService    interfaces.PlannedService
	StatisticsService interfaces.StatisticsService
	AnalyticsService  interfaces.AnalyticsService
	StartupTime       time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage and all services.
// configPath may be empty, in which case the default resolution logic
// is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("BEEHIVE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "beehive.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/beehive.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Bank.Path != "" && !filepath.IsAbs(config.Storage.Bank.Path) {
		config.Storage.Bank.Path = filepath.Join(binDir, config.Storage.Bank.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return newApp(config, logger, storageManager), nil
}

// NewAppWithStorage builds an App on an existing storage manager.
// Used by tests that need control over the storage location.
func NewAppWithStorage(config *common.Config, logger *common.Logger, storageManager interfaces.StorageManager) *App {
	return newApp(config, logger, storageManager)
}

func newApp(config *common.Config, logger *common.Logger, storageManager interfaces.StorageManager) *App {
	store := storageManager.BankStore()
	guard := validation.NewGuard(store, logger)
	engine := balance.NewEngine(store, logger)

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		BalanceEngine:     engine,
		ValidationGuard:   guard,
		AccountService:    account.NewService(store, guard, logger),
		MovementService:   movement.NewService(store, guard, engine, logger),
		PlannedService:    planned.NewService(store, guard, logger),
		StatisticsService: statistics.NewService(store, logger),
		AnalyticsService:  analytics.NewService(store, logger),
		StartupTime:       time.Now(),
	}

	if config.Scheduler.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		a.schedulerCancel = cancel
		go startPlannedScheduler(ctx, a.PlannedService, logger, config.Scheduler.GetInterval())
	}

	return a
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
