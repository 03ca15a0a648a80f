package amino

import "encoding/binary"

// zigzagEncode maps a signed integer to an unsigned one so that small
// magnitude negative numbers still produce short varints: 0,-1,1,-2,2 ->
// 0,1,2,3,4.
func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// zigzagDecode is the inverse of zigzagEncode.
func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// appendUvarint appends the standard LEB128 unsigned varint encoding of v.
func appendUvarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// appendVarint appends v as a zigzag varint: the encoding Amino calls
// "Varint" for signed fields (round, pol_round, totals). There is no
// separate non-zigzag signed varint form in this wire format.
func appendVarint(dst []byte, v int64) []byte {
	return appendUvarint(dst, zigzagEncode(v))
}
