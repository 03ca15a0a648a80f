package secureconn

import (
	"bytes"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfInfo is the literal context string both peers hash into the key
// schedule. It must match byte-for-byte across implementations for the
// derived keys to agree.
const hkdfInfo = "TENDERMINT_SECRET_CONNECTION_KEY_AND_CHALLENGE_GEN"

const (
	keyLen       = 32
	challengeLen = 32
	scheduleLen  = keyLen + keyLen + challengeLen // 96
)

// sessionKeys holds the session's two directional ChaCha20-Poly1305 keys
// and the shared challenge both peers sign for authentication.
type sessionKeys struct {
	recvKey   [keyLen]byte
	sendKey   [keyLen]byte
	challenge [challengeLen]byte
}

// sort32 returns the lexicographically smaller and larger of two 32-byte
// strings under byte-wise comparison, plus whether a was the smaller one.
// Commutative under swapping its arguments other than the reported order.
func sort32(a, b [32]byte) (lo, hi [32]byte, aIsLo bool) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b, true
	}
	return b, a, false
}

// deriveSessionKeys runs the HKDF-SHA256 extract-then-expand schedule over
// the X25519 shared secret and orients (recvKey, sendKey) according to
// locIsLo, so that two peers running this with mirrored orientation derive
// mirror-image keys with no further negotiation.
func deriveSessionKeys(shared [32]byte, locIsLo bool) (sessionKeys, error) {
	kdf := hkdf.New(sha256.New, shared[:], nil, []byte(hkdfInfo))
	var okm [scheduleLen]byte
	if _, err := io.ReadFull(kdf, okm[:]); err != nil {
		return sessionKeys{}, newErr(CryptoError, "derive_session_keys", err)
	}

	var k0, k1 [keyLen]byte
	copy(k0[:], okm[0:keyLen])
	copy(k1[:], okm[keyLen:2*keyLen])

	var sk sessionKeys
	copy(sk.challenge[:], okm[2*keyLen:scheduleLen])
	if locIsLo {
		sk.recvKey = k0
		sk.sendKey = k1
	} else {
		sk.sendKey = k0
		sk.recvKey = k1
	}
	return sk, nil
}
