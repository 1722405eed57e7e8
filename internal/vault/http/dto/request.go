// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	customValidation "github.com/allisson/tokenshare/internal/validation"
)

// CreateSecretRequest contains the parameters for sharing a new secret.
type CreateSecretRequest struct {
	Secret     string `json:"secret"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// Validate checks the request against the configured size limit (zero disables it).
func (r *CreateSecretRequest) Validate(maxSecretBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Secret,
			validation.Required,
			customValidation.NotBlank,
			customValidation.MaxBytes(maxSecretBytes),
		),
		validation.Field(&r.TTLSeconds,
			validation.Min(int64(0)),
		),
	)
}

// ToDomain converts the request into use case input.
func (r *CreateSecretRequest) ToDomain() *vaultDomain.CreateSecretInput {
	return &vaultDomain.CreateSecretInput{
		Plaintext: []byte(r.Secret),
		TTL:       time.Duration(r.TTLSeconds) * time.Second,
	}
}

// RevealSecretRequest carries the capability token in the body so it never shows up in
// access logs or link previews.
type RevealSecretRequest struct {
	Token string `json:"token"`
}

// Validate checks if the reveal request is well formed.
func (r *RevealSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			validation.Length(1, vaultDomain.MaxTokenLength),
		),
	)
}
