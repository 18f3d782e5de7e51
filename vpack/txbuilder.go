package vpack

// txOutput is one output slot in a reconstructed Bitcoin V3 preimage.
type txOutput struct {
	Value  uint64
	Script []byte
}

// txBuildSpec describes the single level of reconstruction C4 needs to
// produce a canonical Bitcoin V3 non-witness preimage (spec.md §4.4).
type txBuildSpec struct {
	PrevHash Hash256
	PrevVout uint32
	Sequence uint32
	Outputs  []txOutput // fixed order: caller has already placed the child at ParentIndex
	Locktime uint32
}

const txVersion3 = int32(3)

// buildPreimage serializes spec into the canonical non-witness Bitcoin V3
// transaction preimage used for hashing (spec.md §4.4, steps 1-7).
func buildPreimage(spec txBuildSpec) []byte {
	var b []byte
	b = AppendU32le(b, uint32(txVersion3))
	b = AppendCompactSize(b, 1) // single input
	b = append(b, spec.PrevHash[:]...)
	b = AppendU32le(b, spec.PrevVout)
	b = AppendCompactSize(b, 0) // empty scriptSig
	b = AppendU32le(b, spec.Sequence)

	b = AppendCompactSize(b, uint64(len(spec.Outputs)))
	for _, o := range spec.Outputs {
		b = AppendU64le(b, o.Value)
		b = appendLenPrefixed(b, o.Script)
	}
	b = AppendU32le(b, spec.Locktime)
	return b
}

// reconstructedTx is a single level's built preimage plus its derived txid.
type reconstructedTx struct {
	Preimage []byte
	Txid     Hash256
	Outputs  []txOutput
}

// buildTx builds the preimage for spec and computes its txid via
// double-SHA256 (spec.md §4.4 "txid = DSHA256(preimage)").
func buildTx(spec txBuildSpec) reconstructedTx {
	preimage := buildPreimage(spec)
	return reconstructedTx{
		Preimage: preimage,
		Txid:     doubleSHA256(preimage),
		Outputs:  spec.Outputs,
	}
}

// placeChildAmongSiblings assembles a level's output vector: the child
// occupies position parentIndex, siblings fill the remaining positions in
// supplied order, and an optional fee-anchor output is appended last
// (spec.md §4.4 step 5).
func placeChildAmongSiblings(child txOutput, siblings []SiblingNode, parentIndex uint32, feeAnchor *txOutput) ([]txOutput, error) {
	if parentIndex > uint32(len(siblings)) {
		return nil, vperrf(ErrReconstructionFailure, "parent_index %d exceeds sibling slot range [0,%d]", parentIndex, len(siblings))
	}
	out := make([]txOutput, 0, len(siblings)+2)
	si := 0
	for i := 0; i <= len(siblings); i++ {
		if uint32(i) == parentIndex {
			out = append(out, child)
			continue
		}
		out = append(out, txOutput{Value: siblings[si].Value, Script: siblings[si].Script})
		si++
	}
	if feeAnchor != nil {
		out = append(out, *feeAnchor)
	}
	return out, nil
}
