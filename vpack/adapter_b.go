package vpack

// adaptB recognizes the Variant 0x03 (Chain) ingredient shape (spec.md §4.6
// Adapter B): topology "Chain", nSequence 0, a leaf-level record (amount,
// script_pubkey_hex, exit_delta, anchor_outpoint), and an optional ordered
// `path` of ancestor GenesisItems.
//
// When `path` is non-empty it is used as the complete reconstruction path
// verbatim (spec.md §8 scenario 4: the final item's child_amount/script_pubkey
// already *are* the leaf). When `path` is empty, the flat leaf fields are
// synthesized into a single trailing GenesisItem spending anchor_outpoint
// directly (scenario 3, the boarding case) — Adapter B never leaves the
// reconstruction path itself empty, since a null anchor_outpoint sentinel
// still names a real transaction to build.
func adaptB(j *IngredientJSON) (*Container, VtxoId, error) {
	ri := j.ReconstructionIngredients
	if ri.Topology != "Chain" {
		return nil, VtxoId{}, vperrf(ErrAdapterMismatch, "topology %q is not Chain", ri.Topology)
	}

	var anchor OutPoint
	var err error
	switch {
	case ri.AnchorOutpoint != "":
		anchor, err = parseOutpointHex(ri.AnchorOutpoint)
	case ri.ParentOutpoint != "":
		anchor, err = parseOutpointHex(ri.ParentOutpoint)
	default:
		return nil, VtxoId{}, vperr(ErrAdapterMismatch, "missing anchor_outpoint")
	}
	if err != nil {
		return nil, VtxoId{}, err
	}

	var path []GenesisItem
	if len(ri.Path) > 0 {
		path, err = adaptATreePath(ri.Path, nil)
		if err != nil {
			return nil, VtxoId{}, err
		}
	} else {
		if ri.ScriptPubKeyHex == "" {
			return nil, VtxoId{}, vperr(ErrAdapterMismatch, "Chain boarding record missing script_pubkey_hex")
		}
		script, err := decodeHexField("script_pubkey_hex", ri.ScriptPubKeyHex)
		if err != nil {
			return nil, VtxoId{}, err
		}
		path = []GenesisItem{{
			ParentIndex:       0,
			Sequence:          ri.NSequence,
			ChildAmount:       ri.Amount,
			ChildScriptPubKey: script,
		}}
	}

	last := path[len(path)-1]
	leaf := VtxoLeaf{
		Amount:       last.ChildAmount,
		Vout:         last.ParentIndex,
		ExitDelta:    ri.ExitDelta,
		ScriptPubKey: last.ChildScriptPubKey,
	}

	var feeAnchorScript []byte
	if ri.FeeAnchorScript != "" {
		feeAnchorScript, err = decodeHexField("fee_anchor_script", ri.FeeAnchorScript)
		if err != nil {
			return nil, VtxoId{}, err
		}
	}

	c := &Container{
		Header: Header{Variant: VariantChain, TreeDepth: uint16(len(path))},
		Prefix: Prefix{AnchorOutpoint: anchor, FeeAnchorScript: feeAnchorScript},
		Tree:   Tree{Leaf: leaf, Path: path},
	}

	expectedId, err := parseExpectedId(j.RawEvidence.ExpectedVtxoId, IdKindOutPoint)
	if err != nil {
		return nil, VtxoId{}, err
	}
	return c, expectedId, nil
}
