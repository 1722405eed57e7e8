package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localKeyURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kms := NewKMSService()

	t.Run("local keeper wraps and unwraps", func(t *testing.T) {
		keeper, err := kms.OpenKeeper(ctx, localKeyURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		sealed := []byte{0x00, 0x01, 0xFE, 0xFF}
		wrapped, err := keeper.Encrypt(ctx, sealed)
		require.NoError(t, err)
		assert.NotEqual(t, sealed, wrapped)

		unwrapped, err := keeper.Decrypt(ctx, wrapped)
		require.NoError(t, err)
		assert.Equal(t, sealed, unwrapped)
	})

	t.Run("keepers with different keys do not interoperate", func(t *testing.T) {
		keeper1, err := kms.OpenKeeper(ctx, localKeyURI(t))
		require.NoError(t, err)
		defer func() { _ = keeper1.Close() }()
		keeper2, err := kms.OpenKeeper(ctx, localKeyURI(t))
		require.NoError(t, err)
		defer func() { _ = keeper2.Close() }()

		wrapped, err := keeper1.Encrypt(ctx, []byte("payload"))
		require.NoError(t, err)

		_, err = keeper2.Decrypt(ctx, wrapped)
		assert.Error(t, err)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		keeper, err := kms.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
		assert.Contains(t, err.Error(), `unsupported key uri scheme "invalid"`)
	})

	t.Run("malformed local key", func(t *testing.T) {
		keeper, err := kms.OpenKeeper(ctx, "base64key://not-base64!")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})

	t.Run("empty uri", func(t *testing.T) {
		keeper, err := kms.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}
