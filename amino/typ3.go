// Package amino implements the canonical, length-prefixed binary encoding
// used to serialise Tendermint-style consensus messages (Proposal, Vote)
// so that the bytes signed by a remote signer are byte-exact interoperable
// with the reference Tendermint implementation.
//
// The encoder is not a general protobuf/amino runtime: it hand-encodes a
// small, fixed, non-recursive schema instead of pulling in reflection-based
// machinery for three or four known fields.
package amino

// Typ3 is Amino's 3-bit-wide type tag selecting how a field body is
// encoded. It occupies the low bits of a field's tag byte: (fieldNum<<3)|typ3.
type Typ3 byte

const (
	Typ3Varint     Typ3 = 0 // zigzag varint: signed integers
	Typ38Byte      Typ3 = 1 // fixed 8-byte big-endian
	Typ3ByteLength Typ3 = 2 // uvarint length prefix + raw bytes
	Typ3Struct     Typ3 = 3 // opens a nested struct
	Typ3StructTerm Typ3 = 4 // closes the nearest open struct
	Typ34Byte      Typ3 = 5 // fixed 4-byte big-endian
	Typ3Interface  Typ3 = 6 // registered-type value (bytes body here)
)

// fieldTag returns the single tag byte for field fieldNum carrying a typ3
// body: (fieldNum<<3) | typ3.
func fieldTag(fieldNum int, typ3 Typ3) byte {
	return byte(fieldNum<<3) | byte(typ3)
}
