package domain

// Algorithm names the AEAD cipher a sealed box was produced with. It is persisted next
// to every record so the default cipher can change without breaking stored secrets.
type Algorithm string

const (
	// ChaCha20 is ChaCha20-Poly1305. It is the default cipher: constant-time in software
	// and fast on hosts without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"

	// AESGCM is AES-256-GCM, preferable on hardware with AES acceleration.
	AESGCM Algorithm = "aes-gcm"
)

// Fixed widths shared by both supported ciphers.
const (
	// KeySize is the symmetric key width in bytes (256 bits).
	KeySize = 32

	// NonceSize is the nonce width in bytes (96 bits).
	NonceSize = 12

	// TagSize is the authentication tag width appended to every ciphertext.
	TagSize = 16
)

// ParseAlgorithm converts a configuration string into a supported Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(s); alg {
	case ChaCha20, AESGCM:
		return alg, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
