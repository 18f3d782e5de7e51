package vpack

// reconstructTree implements the Variant 0x04 (Tree) algorithm of
// spec.md §4.5.2. Despite the spec's narration starting from the leaf
// ("bottom-up"), the actual build order walks forward through path (root to
// leaf, matching Adapter A's "synthesizes path items root-to-leaf"): the
// first item spends the anchor outpoint directly, each subsequent item
// spends the previous item's freshly computed child output, and the final
// item's child is the leaf itself (spec.md §4.5.2 step 1: "the leaf's
// script, amount ... form the outputs at the lowest level"), whose txid is
// H_0.
func reconstructTree(c *Container, anchorValue *uint64) (VtxoId, []PathDetail, error) {
	if len(c.Tree.Path) == 0 {
		return VtxoId{}, nil, vperr(ErrReconstructionFailure, "Variant 0x04 requires at least one path level")
	}
	if len(c.Prefix.FeeAnchorScript) == 0 {
		return VtxoId{}, nil, vperr(ErrFeeAnchorMissing, "Variant 0x04 requires a fee-anchor script")
	}

	prevOutpoint := c.Prefix.AnchorOutpoint
	details := make([]PathDetail, 0, len(c.Tree.Path))

	// committedValue tracks the value this level's single input actually
	// consumes: the previous level's committed child value, or anchorValue
	// at the root when the caller supplies it (spec.md §4.5, same rule as
	// reconstructChain). nil at the root when anchorValue is absent — that
	// level's conservation is then unverifiable, not vacuously true.
	var committedValue *uint64 = anchorValue

	var lastTxid Hash256
	for i, g := range c.Tree.Path {
		if g.Sequence != 0xFFFFFFFF && g.Sequence != 0xFFFFFFFE {
			return VtxoId{}, nil, vperrf(ErrReconstructionFailure, "Variant 0x04 requires sequence 0xFFFFFFFF or 0xFFFFFFFE, got 0x%08x at path[%d]", g.Sequence, i)
		}
		if err := checkArity(c.Header.TreeArity, g.Siblings, i); err != nil {
			return VtxoId{}, nil, err
		}

		isLeafLevel := i == len(c.Tree.Path)-1
		var child txOutput
		if isLeafLevel {
			child = txOutput{Value: c.Tree.Leaf.Amount, Script: c.Tree.Leaf.ScriptPubKey}
		} else {
			child = txOutput{Value: g.ChildAmount, Script: g.ChildScriptPubKey}
		}

		feeAnchor := &txOutput{Value: 0, Script: c.Prefix.FeeAnchorScript}
		outputs, err := placeChildAmongSiblings(child, g.Siblings, g.ParentIndex, feeAnchor)
		if err != nil {
			return VtxoId{}, nil, err
		}

		if committedValue != nil {
			if err := checkConservation(outputs, *committedValue); err != nil {
				return VtxoId{}, nil, err
			}
		}

		spec := txBuildSpec{
			PrevHash: prevOutpoint.Hash,
			PrevVout: prevOutpoint.Vout,
			Sequence: g.Sequence,
			Outputs:  outputs,
			Locktime: 0,
		}
		built := buildTx(spec)

		digest := spendDigest(built.Preimage, digestConsumedValue(committedValue, outputs))
		hasSig, sigErr := checkGenesisItemSignature(g, child.Script, digest)
		if sigErr != nil {
			return VtxoId{}, nil, sigErr
		}

		seq := g.Sequence
		details = append(details, PathDetail{
			Txid:          built.Txid.String(),
			Amount:        child.Value,
			Vout:          g.ParentIndex,
			IsLeaf:        isLeafLevel,
			IsAnchor:      i == 0,
			HasSignature:  hasSig,
			HasFeeAnchor:  true,
			ExitWeightVB:  exitWeightVB(outputs, c.Prefix.FeeAnchorScript, child.Script, hasSig),
			Sequence:      &seq,
			ExitDelta:     exitDeltaPtr(isLeafLevel, c.Tree.Leaf.ExitDelta),
			UnsignedTxHex: hexEncode(built.Preimage),
		})

		prevOutpoint = OutPoint{Hash: built.Txid, Vout: g.ParentIndex}
		lastTxid = built.Txid
		nextCommitted := child.Value
		committedValue = &nextCommitted
	}

	return NewHashId(lastTxid), details, nil
}
