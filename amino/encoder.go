package amino

import "encoding/binary"

// encoder accumulates the body of one Amino record. It is a small
// visitor-style helper: callers describe each field (number, typ3, value)
// and the encoder appends the corresponding tag and body, rather than each
// record type hand-rolling its own byte-slice bookkeeping. Nested structs
// are opened with openStruct and closed with closeStruct so the
// StructTerm bookkeeping for deep records (Vote's BlockID, PartsSetHeader)
// stays correct no matter how deeply they nest.
type encoder struct {
	buf []byte
}

// openStruct writes the field tag opening a nested struct.
func (e *encoder) openStruct(fieldNum int) {
	e.buf = append(e.buf, fieldTag(fieldNum, Typ3Struct))
}

// closeStruct writes one StructTerm byte, closing the nearest open struct.
func (e *encoder) closeStruct() {
	e.buf = append(e.buf, byte(Typ3StructTerm))
}

// fixed8 writes a field tagged 8Byte: a big-endian int64 (used for heights
// and the timestamp's seconds component).
func (e *encoder) fixed8(fieldNum int, v int64) {
	e.buf = append(e.buf, fieldTag(fieldNum, Typ38Byte))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	e.buf = append(e.buf, b[:]...)
}

// fixed4 writes a field tagged 4Byte: a big-endian uint32 (used for the
// timestamp's nanosecond component).
func (e *encoder) fixed4(fieldNum int, v uint32) {
	e.buf = append(e.buf, fieldTag(fieldNum, Typ34Byte))
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// varint writes a field tagged Varint: a zigzag-encoded signed integer.
// Unlike byte fields, a zero value is still written — only empty byte
// strings and absent optional fields are omitted.
func (e *encoder) varint(fieldNum int, v int64) {
	e.buf = append(e.buf, fieldTag(fieldNum, Typ3Varint))
	e.buf = appendVarint(e.buf, v)
}

// byteLength writes a field tagged ByteLength: a uvarint length prefix
// followed by the raw bytes. An empty or nil value is omitted entirely,
// matching the reference encoder which writes nothing at all for a
// zero-length byte field rather than an explicit zero-length element.
func (e *encoder) byteLength(fieldNum int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.buf = append(e.buf, fieldTag(fieldNum, Typ3ByteLength))
	e.buf = appendUvarint(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// interfaceBytes writes a field tagged Interface carrying a raw byte body
// (used for the optional Ed25519 signature field). Omitted when v is
// empty, the same as byteLength.
func (e *encoder) interfaceBytes(fieldNum int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.buf = append(e.buf, fieldTag(fieldNum, Typ3Interface))
	e.buf = appendUvarint(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// finish wraps the accumulated field body for name: disfix header, the
// universal field-1/Struct tag that opens every top-level registered
// value, the body itself, two StructTerm bytes (closing that wrapper and
// the implicit envelope around it), and a uvarint length prefix over the
// whole thing.
func (e *encoder) finish(name string) []byte {
	disfix := computeDisfix(name)

	body := make([]byte, 0, disfixLen+1+len(e.buf)+2)
	body = append(body, disfix[:]...)
	body = append(body, fieldTag(1, Typ3Struct))
	body = append(body, e.buf...)
	body = append(body, byte(Typ3StructTerm), byte(Typ3StructTerm))

	out := appendUvarint(nil, uint64(len(body)))
	return append(out, body...)
}
