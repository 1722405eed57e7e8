package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"gocloud.dev/secrets"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperSchemes lists the KMS_KEY_URI schemes linked into the binary. base64key is a
// local key meant for development and tests.
var KeeperSchemes = []string{"awskms", "azurekeyvault", "gcpkms", "hashivault", "base64key"}

// KMSService opens keepers used to wrap stored ciphertext at rest.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens the keeper identified by keyURI. The caller must Close it.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	scheme, _, ok := strings.Cut(keyURI, "://")
	if !ok || !slices.Contains(KeeperSchemes, scheme) {
		return nil, fmt.Errorf(
			"failed to open KMS keeper: unsupported key uri scheme %q (supported: %s)",
			scheme,
			strings.Join(KeeperSchemes, ", "),
		)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
