package dto

import (
	"strings"
	"time"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
)

// CreateSecretResponse is returned once, to the sender. It is the only time the token
// exists outside the recipient's hands.
type CreateSecretResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	ShareURL  string     `json:"share_url,omitempty"`
}

// MapCreateSecretOutputToResponse builds the response, adding a share link when
// publicBaseURL is set.
func MapCreateSecretOutputToResponse(
	output *vaultDomain.CreateSecretOutput,
	publicBaseURL string,
) CreateSecretResponse {
	return CreateSecretResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		ShareURL:  ShareURL(publicBaseURL, output.Token),
	}
}

// ShareURL formats "<base>/get/<token>", or returns "" when base is empty.
func ShareURL(publicBaseURL, token string) string {
	if publicBaseURL == "" {
		return ""
	}
	return strings.TrimRight(publicBaseURL, "/") + "/get/" + token
}

// RevealSecretResponse carries the decrypted secret.
type RevealSecretResponse struct {
	Secret string `json:"secret"`
}
