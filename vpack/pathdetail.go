package vpack

import "encoding/hex"

// PathDetail is the per-level reconstruction record the engine emits
// alongside a Verdict (spec.md §4.5.3), for UI/audit consumption.
type PathDetail struct {
	Txid          string
	Amount        uint64
	Vout          uint32
	IsLeaf        bool
	IsAnchor      bool
	HasSignature  bool
	HasFeeAnchor  bool
	ExitWeightVB  uint32
	Sequence      *uint32
	ExitDelta     *uint16
	UnsignedTxHex string
}

func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}
