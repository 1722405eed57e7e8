package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	cryptoService "github.com/allisson/tokenshare/internal/crypto/service"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyGenerator returns the per-secret key generator.
func (c *Container) KeyGenerator() cryptoService.KeyGenerator {
	c.keyGeneratorInit.Do(func() {
		c.keyGenerator = cryptoService.NewKeyGenerator()
	})
	return c.keyGenerator
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// Envelope returns the AEAD envelope sealing with VAULT_ALGORITHM.
func (c *Container) Envelope() (cryptoService.Envelope, error) {
	c.envelopeInit.Do(func() {
		var err error
		c.envelope, err = c.initEnvelope()
		c.setInitError("envelope", err)
	})
	if err := c.initError("envelope"); err != nil {
		return nil, err
	}
	return c.envelope, nil
}

// Keeper returns the KMS keeper configured by KMS_KEY_URI, or nil when none is set.
func (c *Container) Keeper() (cryptoService.Keeper, error) {
	c.keeperInit.Do(func() {
		var err error
		c.keeper, err = c.initKeeper()
		c.setInitError("keeper", err)
	})
	if err := c.initError("keeper"); err != nil {
		return nil, err
	}
	return c.keeper, nil
}

// initEnvelope validates the configured algorithm and builds the envelope.
func (c *Container) initEnvelope() (cryptoService.Envelope, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.VaultAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid vault algorithm: %w", err)
	}
	return cryptoService.NewEnvelope(c.AEADManager(), alg), nil
}

// initKeeper opens the keeper. The container closes it on Shutdown.
func (c *Container) initKeeper() (cryptoService.Keeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, nil
	}

	keeper, err := c.KMSService().OpenKeeper(c.ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	c.Logger().Info("stored ciphertext will be wrapped by KMS keeper")
	return keeper, nil
}
