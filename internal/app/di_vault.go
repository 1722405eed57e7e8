package app

import (
	"fmt"

	"github.com/allisson/tokenshare/internal/config"
	vaultHTTP "github.com/allisson/tokenshare/internal/vault/http"
	vaultRepository "github.com/allisson/tokenshare/internal/vault/repository"
	vaultUseCase "github.com/allisson/tokenshare/internal/vault/usecase"
	"github.com/allisson/tokenshare/internal/vault/worker"
)

// RecordRepository returns the record store selected by STORE_DRIVER, wrapped by the
// KMS keeper when KMS_KEY_URI is set.
func (c *Container) RecordRepository() (vaultUseCase.RecordRepository, error) {
	c.recordRepositoryInit.Do(func() {
		var err error
		c.recordRepository, err = c.initRecordRepository()
		c.setInitError("recordRepository", err)
	})
	if err := c.initError("recordRepository"); err != nil {
		return nil, err
	}
	return c.recordRepository, nil
}

// VaultUseCase returns the vault use case decorated with metrics.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	c.vaultUseCaseInit.Do(func() {
		var err error
		c.vaultUseCase, err = c.initVaultUseCase()
		c.setInitError("vaultUseCase", err)
	})
	if err := c.initError("vaultUseCase"); err != nil {
		return nil, err
	}
	return c.vaultUseCase, nil
}

// VaultHandler returns the HTTP handler for the vault endpoints.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	c.vaultHandlerInit.Do(func() {
		var err error
		c.vaultHandler, err = c.initVaultHandler()
		c.setInitError("vaultHandler", err)
	})
	if err := c.initError("vaultHandler"); err != nil {
		return nil, err
	}
	return c.vaultHandler, nil
}

// Sweeper returns the expiry sweeper. It is idle until started.
func (c *Container) Sweeper() (*worker.Sweeper, error) {
	c.sweeperInit.Do(func() {
		var err error
		c.sweeper, err = c.initSweeper()
		c.setInitError("sweeper", err)
	})
	if err := c.initError("sweeper"); err != nil {
		return nil, err
	}
	return c.sweeper, nil
}

// initRecordRepository creates the record store based on the store driver.
func (c *Container) initRecordRepository() (vaultUseCase.RecordRepository, error) {
	var store vaultRepository.RecordStore

	switch c.config.StoreDriver {
	case config.StoreDriverMemory:
		c.Logger().Warn("using in-memory record store, secrets are lost on restart")
		store = vaultRepository.NewMemoryRecordRepository()
	case config.StoreDriverPostgres, config.StoreDriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for record repository: %w", err)
		}
		if c.config.StoreDriver == config.StoreDriverMySQL {
			store = vaultRepository.NewMySQLRecordRepository(db)
		} else {
			store = vaultRepository.NewPostgreSQLRecordRepository(db)
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", c.config.StoreDriver)
	}

	keeper, err := c.Keeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for record repository: %w", err)
	}
	if keeper != nil {
		store = vaultRepository.NewKeeperRecordRepository(store, keeper)
	}

	return store, nil
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	recordRepository, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for vault use case: %w", err)
	}

	envelope, err := c.Envelope()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope for vault use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	useCase := vaultUseCase.NewVaultUseCase(
		recordRepository,
		envelope,
		c.KeyGenerator(),
		vaultUseCase.Config{
			BurnAfterRead:  c.config.VaultBurnAfterRead,
			DefaultTTL:     c.config.VaultDefaultTTL,
			MaxTTL:         c.config.VaultMaxTTL,
			MaxSecretBytes: c.config.VaultMaxSecretBytes,
		},
	)

	return vaultUseCase.NewVaultUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initVaultHandler creates the vault HTTP handler.
func (c *Container) initVaultHandler() (*vaultHTTP.VaultHandler, error) {
	useCase, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for vault handler: %w", err)
	}

	return vaultHTTP.NewVaultHandler(
		useCase,
		c.config.PublicBaseURL,
		c.config.VaultMaxSecretBytes,
		c.Logger(),
	), nil
}

// initSweeper creates the expiry sweeper on SWEEPER_SCHEDULE.
func (c *Container) initSweeper() (*worker.Sweeper, error) {
	useCase, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for sweeper: %w", err)
	}

	sweeper, err := worker.NewSweeper(useCase, c.config.SweeperSchedule, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create sweeper: %w", err)
	}
	return sweeper, nil
}
