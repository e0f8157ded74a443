// Package storage provides the top-level StorageManager that owns the
// bank storage area.
package storage

import (
	"fmt"

	"github.com/beehive/dashboard/internal/common"
	"github.com/beehive/dashboard/internal/interfaces"
	"github.com/beehive/dashboard/internal/storage/bankdb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	bank   *bankdb.Store
	logger *common.Logger
}

// NewManager creates a new StorageManager.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	bankStore, err := bankdb.NewStore(logger, config.Storage.Bank.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank store: %w", err)
	}

	logger.Info().
		Str("bank", config.Storage.Bank.Path).
		Msg("Storage manager initialized")

	return &Manager{
		bank:   bankStore,
		logger: logger,
	}, nil
}

func (m *Manager) BankStore() interfaces.BankStore {
	return m.bank
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	if err := m.bank.Close(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to close bank store")
		return err
	}
	return nil
}

var _ interfaces.StorageManager = (*Manager)(nil)
