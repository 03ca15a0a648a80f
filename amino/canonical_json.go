package amino

import (
	"encoding/hex"
	"encoding/json"
)

// canonicalProposalJSON and canonicalVoteJSON render @chain_id, @type, height, round, timestamp
// (RFC-3339), and nested block identifiers with uppercase-hex hashes as a
// JSON string. encoding/json is used over a field-ordered struct (not a
// map) so the emitted key order is exact and deterministic, matching what
// the long-term key actually signs.

type canonicalPartsSetHeader struct {
	Hash  string `json:"hash"`
	Total int64  `json:"total"`
}

type canonicalBlockID struct {
	Hash  string                  `json:"hash"`
	Parts canonicalPartsSetHeader `json:"parts"`
}

// toUpperHex renders b as uppercase hex, matching the original renderer's
// encode_upper; hex.EncodeToString alone always lowercases.
func toUpperHex(b []byte) string {
	s := hex.EncodeToString(b)
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

type canonicalProposal struct {
	ChainID          string                  `json:"@chain_id"`
	Type             string                  `json:"@type"`
	Height           int64                   `json:"height"`
	Round            int64                   `json:"round"`
	Timestamp        string                  `json:"timestamp"`
	BlockPartsHeader canonicalPartsSetHeader `json:"block_parts_header"`
	PolBlockID       canonicalBlockID        `json:"pol_block_id"`
	PolRound         int64                   `json:"pol_round"`
}

func canonicalProposalJSON(chainID string, p Proposal) string {
	doc := canonicalProposal{
		ChainID:   chainID,
		Type:      "proposal",
		Height:    p.Height,
		Round:     p.Round,
		Timestamp: p.Timestamp.UTC().Format(rfc3339Nano),
		BlockPartsHeader: canonicalPartsSetHeader{
			Hash:  toUpperHex(p.BlockPartsHeader.Hash),
			Total: p.BlockPartsHeader.Total,
		},
		PolBlockID: canonicalBlockID{
			Hash: toUpperHex(p.PolBlockID.Hash),
			Parts: canonicalPartsSetHeader{
				Hash:  toUpperHex(p.PolBlockID.Parts.Hash),
				Total: p.PolBlockID.Parts.Total,
			},
		},
		PolRound: p.PolRound,
	}
	out, err := json.Marshal(doc)
	if err != nil {
		// Only possible if a field cannot be marshalled at all, which
		// cannot happen for this fixed, string/int-only shape.
		panic("amino: canonical proposal JSON: " + err.Error())
	}
	return string(out)
}

type canonicalVote struct {
	ChainID   string           `json:"@chain_id"`
	Type      string           `json:"@type"`
	Height    int64            `json:"height"`
	Round     int64            `json:"round"`
	Timestamp string           `json:"timestamp"`
	BlockID   canonicalBlockID `json:"block_id"`
	VoteType  byte             `json:"type"`
}

func canonicalVoteJSON(chainID string, v Vote) string {
	doc := canonicalVote{
		ChainID:   chainID,
		Type:      "vote",
		Height:    v.Height,
		Round:     v.Round,
		Timestamp: v.Timestamp.UTC().Format(rfc3339Nano),
		BlockID: canonicalBlockID{
			Hash: toUpperHex(v.BlockID.Hash),
			Parts: canonicalPartsSetHeader{
				Hash:  toUpperHex(v.BlockID.Parts.Hash),
				Total: v.BlockID.Parts.Total,
			},
		},
		VoteType: byte(v.Type),
	}
	out, err := json.Marshal(doc)
	if err != nil {
		panic("amino: canonical vote JSON: " + err.Error())
	}
	return string(out)
}

const rfc3339Nano = "2006-01-02T15:04:05.000Z07:00"
