package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateSecretRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreateSecretRequest
		maxBytes  int
		shouldErr bool
	}{
		{"valid", CreateSecretRequest{Secret: "hunter2"}, 0, false},
		{"valid with ttl", CreateSecretRequest{Secret: "hunter2", TTLSeconds: 3600}, 0, false},
		{"empty secret", CreateSecretRequest{}, 0, true},
		{"blank secret", CreateSecretRequest{Secret: "   "}, 0, true},
		{"negative ttl", CreateSecretRequest{Secret: "hunter2", TTLSeconds: -1}, 0, true},
		{"within size limit", CreateSecretRequest{Secret: "hunter2"}, 7, false},
		{"over size limit", CreateSecretRequest{Secret: strings.Repeat("a", 11)}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate(tt.maxBytes)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateSecretRequest_ToDomain(t *testing.T) {
	request := CreateSecretRequest{Secret: "hunter2", TTLSeconds: 90}

	input := request.ToDomain()

	assert.Equal(t, []byte("hunter2"), input.Plaintext)
	assert.Equal(t, 90*time.Second, input.TTL)
}

func TestRevealSecretRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RevealSecretRequest{Token: "anything::non-empty"}).Validate())
	assert.Error(t, (&RevealSecretRequest{}).Validate())
	assert.Error(t, (&RevealSecretRequest{Token: strings.Repeat("a", 257)}).Validate())
}
