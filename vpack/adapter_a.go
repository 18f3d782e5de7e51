package vpack

import "bytes"

// adaptA recognizes the Variant 0x04 (Tree) ingredient shape (spec.md §4.6
// Adapter A): topology "Tree", nSequence restricted to the Rounds/OOR pair,
// a mandatory non-empty fee_anchor_script, and either a flat `outputs` list
// (a single leaf-producing level) or a `siblings` + `child_output` pair (a
// single branch level), or a full `path` for multi-level trees. The
// record's tx_version field is not inspected: a record is accepted whatever
// tx_version it carries, or none.
func adaptA(j *IngredientJSON) (*Container, VtxoId, error) {
	ri := j.ReconstructionIngredients
	if ri.Topology != "Tree" {
		return nil, VtxoId{}, vperrf(ErrAdapterMismatch, "topology %q is not Tree", ri.Topology)
	}
	if ri.NSequence != 0xFFFFFFFF && ri.NSequence != 0xFFFFFFFE {
		return nil, VtxoId{}, vperrf(ErrAdapterMismatch, "nSequence 0x%08x invalid for Tree", ri.NSequence)
	}
	if ri.FeeAnchorScript == "" {
		return nil, VtxoId{}, vperr(ErrAdapterMismatch, "fee_anchor_script required for Tree")
	}
	feeAnchorScript, err := decodeHexField("fee_anchor_script", ri.FeeAnchorScript)
	if err != nil {
		return nil, VtxoId{}, err
	}

	var anchor OutPoint
	switch {
	case ri.ParentOutpoint != "":
		anchor, err = parseOutpointHex(ri.ParentOutpoint)
	case ri.AnchorOutpoint != "":
		anchor, err = parseOutpointHex(ri.AnchorOutpoint)
	default:
		return nil, VtxoId{}, vperr(ErrAdapterMismatch, "missing parent_outpoint/anchor_outpoint")
	}
	if err != nil {
		return nil, VtxoId{}, err
	}

	var path []GenesisItem
	switch {
	case len(ri.Path) > 0:
		path, err = adaptATreePath(ri.Path, feeAnchorScript)
	case len(ri.Outputs) > 0:
		item, ferr := adaptAFlatOutputs(ri.Outputs, feeAnchorScript, ri.NSequence)
		path, err = []GenesisItem{item}, ferr
	case ri.ChildOutput != nil:
		item, ferr := adaptAChildOutput(*ri.ChildOutput, ri.Siblings, ri.NSequence)
		path, err = []GenesisItem{item}, ferr
	default:
		return nil, VtxoId{}, vperr(ErrAdapterMismatch, "Tree record has neither outputs, child_output, nor path")
	}
	if err != nil {
		return nil, VtxoId{}, err
	}
	if len(path) == 0 {
		return nil, VtxoId{}, vperr(ErrAdapterMismatch, "Tree record synthesized an empty path")
	}

	last := path[len(path)-1]
	leaf := VtxoLeaf{
		Amount:       last.ChildAmount,
		Vout:         last.ParentIndex,
		ExitDelta:    ri.ExitDelta,
		ScriptPubKey: last.ChildScriptPubKey,
	}

	c := &Container{
		Header: Header{Variant: VariantTree, TreeDepth: uint16(len(path))},
		Prefix: Prefix{AnchorOutpoint: anchor, FeeAnchorScript: feeAnchorScript},
		Tree:   Tree{Leaf: leaf, Path: path},
	}

	expectedId, err := parseExpectedId(j.RawEvidence.ExpectedVtxoId, IdKindHash)
	if err != nil {
		return nil, VtxoId{}, err
	}
	return c, expectedId, nil
}

// adaptAFlatOutputs handles a single leaf-producing level expressed as a
// flat, ordered output list (spec.md §8 scenarios 1-2). The entry whose
// script matches feeAnchorScript is the mandatory fee-anchor output and is
// excluded from the synthesized GenesisItem (placeChildAmongSiblings
// re-adds it); the first remaining entry is the child, any further entries
// become siblings — a convention this module chooses since the schema
// itself carries no explicit "is this the child" marker beyond position.
func adaptAFlatOutputs(outputs []ingredientOutput, feeAnchorScript []byte, sequence uint32) (GenesisItem, error) {
	var child *txOutput
	var childSlot uint32
	var siblings []SiblingNode
	slot := uint32(0)
	for _, o := range outputs {
		script, err := decodeHexField("outputs[].script", o.Script)
		if err != nil {
			return GenesisItem{}, err
		}
		if bytes.Equal(script, feeAnchorScript) {
			continue
		}
		if child == nil {
			child = &txOutput{Value: o.Value, Script: script}
			childSlot = slot
		} else {
			siblings = append(siblings, SiblingNode{Value: o.Value, Script: script})
		}
		slot++
	}
	if child == nil {
		return GenesisItem{}, vperr(ErrAdapterMismatch, "outputs has no non-fee-anchor entry")
	}
	return GenesisItem{
		Siblings:          siblings,
		ParentIndex:       childSlot,
		Sequence:          sequence,
		ChildAmount:       child.Value,
		ChildScriptPubKey: child.Script,
	}, nil
}

func adaptAChildOutput(child ingredientOutput, siblings []ingredientSibling, sequence uint32) (GenesisItem, error) {
	childScript, err := decodeHexField("child_output.script", child.Script)
	if err != nil {
		return GenesisItem{}, err
	}
	sibs, err := decodeIngredientSiblings(siblings)
	if err != nil {
		return GenesisItem{}, err
	}
	return GenesisItem{
		Siblings:          sibs,
		ParentIndex:       0,
		Sequence:          sequence,
		ChildAmount:       child.Value,
		ChildScriptPubKey: childScript,
	}, nil
}

func adaptATreePath(items []ingredientPathItem, _ []byte) ([]GenesisItem, error) {
	path := make([]GenesisItem, 0, len(items))
	for i, it := range items {
		g, err := decodeIngredientPathItem(it)
		if err != nil {
			return nil, vperrf(ErrAdapterMismatch, "path[%d]: %v", i, err)
		}
		path = append(path, g)
	}
	return path, nil
}

func decodeIngredientSiblings(siblings []ingredientSibling) ([]SiblingNode, error) {
	out := make([]SiblingNode, 0, len(siblings))
	for _, s := range siblings {
		script, err := decodeHexField("siblings[].script", s.Script)
		if err != nil {
			return nil, err
		}
		var hash [32]byte
		if s.Hash != "" {
			hash, err = decodeHex32Field("siblings[].hash", s.Hash)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, SiblingNode{Hash: hash, Value: s.Value, Script: script})
	}
	return out, nil
}

func decodeIngredientPathItem(it ingredientPathItem) (GenesisItem, error) {
	siblings, err := decodeIngredientSiblings(it.Siblings)
	if err != nil {
		return GenesisItem{}, err
	}
	childScript, err := decodeHexField("child_script_pubkey", it.ChildScriptPubKey)
	if err != nil {
		return GenesisItem{}, err
	}
	var sig *[64]byte
	if it.Signature != "" {
		s, err := decodeHex64Field("signature", it.Signature)
		if err != nil {
			return GenesisItem{}, err
		}
		sig = &s
	}
	return GenesisItem{
		Siblings:          siblings,
		ParentIndex:       it.ParentIndex,
		Sequence:          it.Sequence,
		ChildAmount:       it.ChildAmount,
		ChildScriptPubKey: childScript,
		Signature:         sig,
	}, nil
}
