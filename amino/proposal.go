package amino

import "time"

// proposalTypeName is the registered Amino type name whose SHA-256 seeds
// the disfix header written ahead of every encoded Proposal.
const proposalTypeName = "tendermint/socketpv/SignProposalMsg"

// Proposal is a consensus proposal message. PolBlockID is carried on the
// struct (matching the original record, which declares the field) but is
// never placed on the wire by Serialize, matching the reference encoder's
// own asymmetry: the field exists for the in-memory record but has no
// wire representation in the signable/broadcast form.
type Proposal struct {
	Height           int64
	Round            int64
	Timestamp        time.Time
	BlockPartsHeader PartsSetHeader
	PolRound         int64
	PolBlockID       BlockID
	Signature        []byte // nil for the signable form, set for broadcast
}

// Serialize renders p in the canonical Amino wire form: a disfix-tagged,
// length-prefixed struct with fields in the order height, round,
// timestamp, block_parts_header, pol_round, signature. Signature is
// omitted entirely when nil, matching spec: a signable-form Proposal never
// carries one.
func (p Proposal) Serialize() []byte {
	e := &encoder{}
	e.fixed8(1, p.Height)
	e.varint(2, p.Round)
	e.encodeTimestamp(3, p.Timestamp)
	p.BlockPartsHeader.encode(e, 4)
	e.varint(5, p.PolRound)
	e.interfaceBytes(6, p.Signature)
	return e.finish(proposalTypeName)
}

// CanonicalJSON renders p as the canonical JSON string a long-term key
// signs for vote/proposal approval, independent of the Amino wire form.
func (p Proposal) CanonicalJSON(chainID string) string {
	return canonicalProposalJSON(chainID, p)
}
