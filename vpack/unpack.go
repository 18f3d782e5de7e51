package vpack

import "encoding/hex"

// containerToIngredients re-expresses a decoded Container in the canonical
// ingredient JSON shape both adapters accept (spec.md §6 `unpack_to_json`).
// It always emits the full `path` form rather than the flat-outputs/
// child_output shorthand Adapter A also accepts on input, so the result is
// not necessarily byte-identical to whatever shorthand originally produced
// the container. It carries the prefix and path the adapters rebuild from;
// the header's arity, node count, asset type and testnet flag, the asset
// id, and the leaf's vout, sequence and expiry have no slot in it and are
// not emitted, and an adapter re-reading it rebuilds the leaf from the last
// path item.
func containerToIngredients(c *Container) *IngredientJSON {
	j := &IngredientJSON{}

	switch c.Header.Variant {
	case VariantTree:
		j.Meta.Variant = "0x04"
		j.ReconstructionIngredients = ReconstructionIngredients{
			Topology:        "Tree",
			TxVersion:       3,
			FeeAnchorScript: hex.EncodeToString(c.Prefix.FeeAnchorScript),
			IdType:          "Hash",
			AnchorOutpoint:  c.Prefix.AnchorOutpoint.String(),
			ExitDelta:       c.Tree.Leaf.ExitDelta,
			Path:            genesisItemsToIngredients(c.Tree.Path),
		}
		if len(c.Tree.Path) > 0 {
			j.ReconstructionIngredients.NSequence = c.Tree.Path[len(c.Tree.Path)-1].Sequence
		}
	case VariantChain:
		j.Meta.Variant = "0x03"
		j.ReconstructionIngredients = ReconstructionIngredients{
			Topology:        "Chain",
			NSequence:       0,
			IdType:          "OutPoint",
			AnchorOutpoint:  c.Prefix.AnchorOutpoint.String(),
			Amount:          c.Tree.Leaf.Amount,
			ScriptPubKeyHex: hex.EncodeToString(c.Tree.Leaf.ScriptPubKey),
			ExitDelta:       c.Tree.Leaf.ExitDelta,
			Path:            genesisItemsToIngredients(c.Tree.Path),
		}
	}

	if _, id, _, err := ComputeID(c); err == nil {
		j.RawEvidence.ExpectedVtxoId = id.String()
	}

	return j
}

func genesisItemsToIngredients(path []GenesisItem) []ingredientPathItem {
	out := make([]ingredientPathItem, 0, len(path))
	for _, g := range path {
		item := ingredientPathItem{
			Siblings:          siblingsToIngredients(g.Siblings),
			ParentIndex:       g.ParentIndex,
			Sequence:          g.Sequence,
			ChildAmount:       g.ChildAmount,
			ChildScriptPubKey: hex.EncodeToString(g.ChildScriptPubKey),
		}
		if g.Signature != nil {
			item.Signature = hex.EncodeToString(g.Signature[:])
		}
		out = append(out, item)
	}
	return out
}

func siblingsToIngredients(siblings []SiblingNode) []ingredientSibling {
	out := make([]ingredientSibling, 0, len(siblings))
	for _, s := range siblings {
		out = append(out, ingredientSibling{
			Hash:   hex.EncodeToString(s.Hash[:]),
			Value:  s.Value,
			Script: hex.EncodeToString(s.Script),
		})
	}
	return out
}
