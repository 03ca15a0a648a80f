package amino

import "time"

// encodeTimestamp appends a timestamp sub-record to e as a nested struct at
// fieldNum: seconds as an 8Byte field (field 1), nanoseconds as a 4Byte
// field (field 2), truncated to whole seconds plus a sub-second remainder
// the same way the reference encoder splits time.Time into its two wire
// components.
func (e *encoder) encodeTimestamp(fieldNum int, t time.Time) {
	e.openStruct(fieldNum)
	e.fixed8(1, t.Unix())
	e.fixed4(2, uint32(t.Nanosecond()))
	e.closeStruct()
}

// decodeTimestamp is the inverse of encodeTimestamp: it reconstructs a UTC
// time.Time from the two wire components. Nothing in this module calls it.
func decodeTimestamp(seconds int64, nanos uint32) time.Time {
	return time.Unix(seconds, int64(nanos)).UTC()
}
