package vpack

import "fmt"

// OutPoint is a 32-byte txid plus a 4-byte output index (Variant 0x03 identity).
type OutPoint struct {
	Hash Hash256
	Vout uint32
}

// String renders "txid:vout" using Bitcoin's byte-reversed hex display
// convention for the hash (spec.md §9 "Display of outpoints").
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash.String(), o.Vout)
}

// IdKind distinguishes VtxoId's two tagged-union arms.
type IdKind uint8

const (
	IdKindHash IdKind = iota
	IdKindOutPoint
)

// VtxoId is the leaf identity computed by the reconstruction engines: a bare
// 32-byte hash for Variant 0x04 (Tree), or an OutPoint for Variant 0x03
// (Chain). Exactly one of Hash/OutPoint is meaningful, selected by Kind.
type VtxoId struct {
	Kind     IdKind
	Hash     Hash256
	OutPoint OutPoint
}

// NewHashId constructs a Hash-kind VtxoId.
func NewHashId(h Hash256) VtxoId { return VtxoId{Kind: IdKindHash, Hash: h} }

// NewOutPointId constructs an OutPoint-kind VtxoId.
func NewOutPointId(o OutPoint) VtxoId { return VtxoId{Kind: IdKindOutPoint, OutPoint: o} }

// Equal compares two VtxoIds structurally; a Hash-kind id never equals an
// OutPoint-kind id even if the underlying 32 bytes happen to match.
func (id VtxoId) Equal(other VtxoId) bool {
	if id.Kind != other.Kind {
		return false
	}
	switch id.Kind {
	case IdKindHash:
		return id.Hash == other.Hash
	case IdKindOutPoint:
		return id.OutPoint.Hash == other.OutPoint.Hash && id.OutPoint.Vout == other.OutPoint.Vout
	default:
		return false
	}
}

// String renders the identity's canonical display form.
func (id VtxoId) String() string {
	switch id.Kind {
	case IdKindHash:
		return id.Hash.String()
	case IdKindOutPoint:
		return id.OutPoint.String()
	default:
		return "<invalid VtxoId>"
	}
}
