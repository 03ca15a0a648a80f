package secureconn

// NonceSize is the width of a SecretConnection nonce: 96 bits, used as
// the full 12-byte ChaCha20-Poly1305 nonce.
const NonceSize = 12

// Nonce is a 96-bit big-endian counter. The zero value is a valid starting
// nonce for a fresh session.
type Nonce [NonceSize]byte

// Incr adds one to the counter, treating it as a big-endian unsigned
// integer. It returns ErrNonceExhausted once the increment wraps all 96
// bits back to zero; the caller must stop using the session at that point.
// Every frame advances the counter by exactly one.
func (n *Nonce) Incr() error {
	for i := NonceSize - 1; i >= 0; i-- {
		n[i]++
		if n[i] != 0 {
			return nil
		}
	}
	// every byte wrapped to zero: full 96-bit overflow
	return ErrNonceExhausted
}

// Bytes returns the nonce as a byte slice suitable for use as a
// chacha20poly1305.AEAD nonce.
func (n *Nonce) Bytes() []byte { return n[:] }
