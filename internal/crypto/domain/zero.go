package domain

// Zero overwrites a byte slice holding key material or plaintext. Safe on nil.
func Zero(b []byte) {
	clear(b)
}
