package amino

import "time"

// voteTypeName is the registered Amino type name whose SHA-256 seeds the
// disfix header written ahead of every encoded Vote.
const voteTypeName = "tendermint/socketpv/SignVoteMsg"

// VoteType distinguishes a pre-vote from a pre-commit, the two consensus
// steps that produce a signable Vote.
type VoteType byte

const (
	VoteTypePrevote   VoteType = 1
	VoteTypePrecommit VoteType = 2
)

// Vote is a consensus vote message, the sibling record to Proposal.
// Unlike Proposal, a Vote's BlockID is part of its canonical wire form —
// a vote commits to a block (or, for a nil vote, to no block at all, in
// which case BlockID is the zero value and omitted).
type Vote struct {
	Type      VoteType
	Height    int64
	Round     int64
	BlockID   BlockID
	Timestamp time.Time
	Signature []byte // nil for the signable form, set for broadcast
}

// Serialize renders v in the canonical Amino wire form: type, height,
// round, block_id, timestamp, signature, using the same disfix/field-tag
// discipline as Proposal.Serialize.
func (v Vote) Serialize() []byte {
	e := &encoder{}
	e.varint(1, int64(v.Type))
	e.fixed8(2, v.Height)
	e.varint(3, v.Round)
	if !v.BlockID.isZero() {
		v.BlockID.encode(e, 4)
	}
	e.encodeTimestamp(5, v.Timestamp)
	e.interfaceBytes(6, v.Signature)
	return e.finish(voteTypeName)
}

// CanonicalJSON renders v as the canonical JSON string a long-term key
// signs for vote approval, independent of the Amino wire form.
func (v Vote) CanonicalJSON(chainID string) string {
	return canonicalVoteJSON(chainID, v)
}
