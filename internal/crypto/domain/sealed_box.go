package domain

// SealedBox is the output of one seal operation: the nonce drawn for it and the
// ciphertext with its authentication tag appended. It carries no key material and is
// safe to hand to any storage backend.
type SealedBox struct {
	Algorithm  Algorithm
	Nonce      []byte
	Ciphertext []byte
}

// Clone returns a deep copy so callers can mutate the result without touching the original.
func (b SealedBox) Clone() SealedBox {
	return SealedBox{
		Algorithm:  b.Algorithm,
		Nonce:      append([]byte(nil), b.Nonce...),
		Ciphertext: append([]byte(nil), b.Ciphertext...),
	}
}
