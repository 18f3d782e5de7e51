package vpack

// reconstructChain implements the Variant 0x03 (Chain) algorithm of
// spec.md §4.5.1: walk the path from the anchor outpoint to the leaf,
// rebuilding one Bitcoin V3 transaction per GenesisItem.
//
// Open Question 2 (spec.md §9): depth-0 is not special-cased. The loop
// below simply runs zero times when path is empty, leaving prevOutpoint at
// the anchor outpoint — the same value a short-circuit would have produced.
//
// anchorValue, when non-nil, additionally constrains the value consumed at
// the root level (i==0) to equal the L1 anchor UTXO's own value (spec.md §6
// `verify`'s optional anchor_value, and §3's root-level conservation note).
func reconstructChain(c *Container, anchorValue *uint64) (VtxoId, []PathDetail, error) {
	useFeeAnchor := len(c.Prefix.FeeAnchorScript) > 0
	prevOutpoint := c.Prefix.AnchorOutpoint

	details := make([]PathDetail, 0, len(c.Tree.Path)+1)

	// committedValue is the value this level's single input actually
	// consumes: the previous level's ChildAmount, or anchorValue at the
	// root when the caller supplies it (spec.md §4.5: "the value of the
	// consumed input, which is child_amount of the parent level, or the
	// L1 anchor's UTXO value at the root"). nil means that value is
	// unknown (root, anchorValue not supplied) and the per-level
	// conservation check is skipped rather than compared against itself.
	var committedValue *uint64 = anchorValue

	for i, g := range c.Tree.Path {
		if g.Sequence != 0 {
			return VtxoId{}, nil, vperrf(ErrReconstructionFailure, "Variant 0x03 requires sequence 0, got %d at path[%d]", g.Sequence, i)
		}
		if err := checkArity(c.Header.TreeArity, g.Siblings, i); err != nil {
			return VtxoId{}, nil, err
		}

		child := txOutput{Value: g.ChildAmount, Script: g.ChildScriptPubKey}
		var feeAnchor *txOutput
		if useFeeAnchor {
			feeAnchor = &txOutput{Value: 0, Script: c.Prefix.FeeAnchorScript}
		}
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
		hasSig, sigErr := checkGenesisItemSignature(g, g.ChildScriptPubKey, digest)
		if sigErr != nil {
			return VtxoId{}, nil, sigErr
		}

		isLeaf := i == len(c.Tree.Path)-1
		exitDelta := c.Tree.Leaf.ExitDelta
		seq := g.Sequence
		details = append(details, PathDetail{
			Txid:          built.Txid.String(),
			Amount:        g.ChildAmount,
			Vout:          g.ParentIndex,
			IsLeaf:        isLeaf,
			IsAnchor:      i == 0,
			HasSignature:  hasSig,
			HasFeeAnchor:  useFeeAnchor,
			ExitWeightVB:  exitWeightVB(outputs, c.Prefix.FeeAnchorScript, g.ChildScriptPubKey, hasSig),
			Sequence:      &seq,
			ExitDelta:     exitDeltaPtr(isLeaf, exitDelta),
			UnsignedTxHex: hexEncode(built.Preimage),
		})

		prevOutpoint = OutPoint{Hash: built.Txid, Vout: g.ParentIndex}
		nextCommitted := g.ChildAmount
		committedValue = &nextCommitted
	}

	return NewOutPointId(prevOutpoint), details, nil
}

// checkArity enforces header.TreeArity (spec.md §3's "tree arity" field)
// against the actual fan-out of one level: the child output plus its
// siblings. TreeArity 0 means the header didn't declare a bound, matching
// this codebase's other zero-means-unbounded header/limit fields; a
// positive TreeArity that the level's fan-out exceeds is ErrArityViolation,
// part of the mandatory error taxonomy (spec.md §7).
func checkArity(treeArity uint16, siblings []SiblingNode, level int) error {
	if treeArity == 0 {
		return nil
	}
	fanOut := len(siblings) + 1
	if fanOut > int(treeArity) {
		return vperrf(ErrArityViolation, "level %d fan-out %d exceeds tree_arity %d", level, fanOut, treeArity)
	}
	return nil
}

func exitDeltaPtr(isLeaf bool, v uint16) *uint16 {
	if !isLeaf {
		return nil
	}
	return &v
}

// checkConservation enforces spec.md §4.5.2's conservation rule: the sum of
// a level's output values (fee-anchor excluded, always 0) equals the value
// consumed from the parent level. consumedValue must come from the
// previously committed level (or the external anchor_value), never from
// this level's own fields — comparing a level's outputs against a value
// derived from those same outputs can never fail.
func checkConservation(outputs []txOutput, consumedValue uint64) error {
	sum := sumOutputValues(outputs)
	if sum != consumedValue {
		return vperrf(ErrConservationError, "output sum %d != consumed value %d", sum, consumedValue)
	}
	return nil
}

func sumOutputValues(outputs []txOutput) uint64 {
	var sum uint64
	for _, o := range outputs {
		sum += o.Value
	}
	return sum
}

// digestConsumedValue picks the value fed into this level's signing digest
// (spec.md §4.5.2's sighash commits to "the value it consumes"): the known
// committed value when one is available, or this level's own output sum as
// a best-effort stand-in when it is not (root level, no anchor_value
// supplied) — there is no other source for that number in that case, and
// the digest is a verification aid rather than the conservation check
// itself.
func digestConsumedValue(committedValue *uint64, outputs []txOutput) uint64 {
	if committedValue != nil {
		return *committedValue
	}
	return sumOutputValues(outputs)
}
