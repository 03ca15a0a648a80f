package amino

// PartsSetHeader describes the erasure-coded parts a block is split into:
// a total count and the Merkle hash over them.
type PartsSetHeader struct {
	Total int64
	Hash  []byte
}

func (p PartsSetHeader) encode(e *encoder, fieldNum int) {
	e.openStruct(fieldNum)
	e.varint(1, p.Total)
	e.byteLength(2, p.Hash)
	e.closeStruct()
}

// BlockID identifies a block by hash plus the header of its parts set.
// Votes commit to a BlockID; proposals carry one in their struct layout
// but, matching the reference encoder, never place it on the wire (see
// Proposal's field list).
type BlockID struct {
	Hash  []byte
	Parts PartsSetHeader
}

func (b BlockID) encode(e *encoder, fieldNum int) {
	e.openStruct(fieldNum)
	e.byteLength(1, b.Hash)
	b.Parts.encode(e, 2)
	e.closeStruct()
}

// isZero reports whether b carries no block commitment at all (used to
// decide whether Vote should omit its BlockID field the same way Proposal
// omits an absent signature).
func (b BlockID) isZero() bool {
	return len(b.Hash) == 0 && b.Parts.Total == 0 && len(b.Parts.Hash) == 0
}
