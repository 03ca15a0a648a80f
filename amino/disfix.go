package amino

import "crypto/sha256"

// disfixLen is the width of the disambiguation/prefix header written ahead
// of every top-level registered message. A further 3 bytes of disambiguator
// are computed (and would be needed to break a name collision between two
// types sharing the same 4-byte prefix) but are never placed on the wire;
// only the 4-byte prefix is, matching the reference encoder.
const disfixLen = 4

// computeDisfix derives the 4-byte disfix header for a registered type
// name: SHA-256 the name, strip leading zero bytes, discard the first 3
// bytes (the disambiguator), and take the next 4 bytes as the prefix. The
// low bits of the prefix's last byte are then OR'd with the Typ3 tag of the
// value that follows it on the wire (Struct, for every record this package
// encodes).
func computeDisfix(name string) [disfixLen]byte {
	sum := sha256.Sum256([]byte(name))
	h := sum[:]
	for len(h) > 0 && h[0] == 0 {
		h = h[1:]
	}
	const disambLen = 3
	var prefix [disfixLen]byte
	copy(prefix[:], h[disambLen:disambLen+disfixLen])
	prefix[disfixLen-1] |= byte(Typ3Struct)
	return prefix
}
