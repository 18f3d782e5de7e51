package vpack

import "testing"

func TestBuildPreimageShape(t *testing.T) {
	spec := txBuildSpec{
		PrevHash: Hash256{0x01},
		PrevVout: 2,
		Sequence: 0,
		Outputs: []txOutput{
			{Value: 1000, Script: []byte{0x00, 0x14, 0x01}},
		},
		Locktime: 0,
	}
	preimage := buildPreimage(spec)

	// version(4) + input_count(1) + prev_hash(32) + prev_vout(4) +
	// scriptSig_len(1) + sequence(4) + output_count(1) + value(8) +
	// script_len(1) + script(3) + locktime(4)
	want := 4 + 1 + 32 + 4 + 1 + 4 + 1 + 8 + 1 + 3 + 4
	if len(preimage) != want {
		t.Fatalf("preimage length %d != %d", len(preimage), want)
	}
	if preimage[0] != 3 || preimage[1] != 0 || preimage[2] != 0 || preimage[3] != 0 {
		t.Fatalf("version field not 3 (i32 LE): %x", preimage[0:4])
	}
}

func TestBuildTxTxidIsDoubleSHA256OfPreimage(t *testing.T) {
	spec := txBuildSpec{
		PrevHash: Hash256{0xaa},
		PrevVout: 0,
		Outputs:  []txOutput{{Value: 500, Script: []byte{0x51, 0x20, 0x01}}},
	}
	built := buildTx(spec)
	want := doubleSHA256(built.Preimage)
	if built.Txid != want {
		t.Fatalf("txid mismatch: got %x want %x", built.Txid, want)
	}
}

func TestPlaceChildAmongSiblings(t *testing.T) {
	child := txOutput{Value: 1000, Script: []byte{0x01}}
	siblings := []SiblingNode{
		{Value: 10, Script: []byte{0x0a}},
		{Value: 20, Script: []byte{0x14}},
	}
	feeAnchor := &txOutput{Value: 0, Script: []byte{0x51, 0x02, 0x4e, 0x73}}

	outputs, err := placeChildAmongSiblings(child, siblings, 1, feeAnchor)
	if err != nil {
		t.Fatalf("placeChildAmongSiblings: %v", err)
	}
	if len(outputs) != 4 {
		t.Fatalf("want 4 outputs (2 siblings + child + fee anchor), got %d", len(outputs))
	}
	if outputs[0].Value != 10 || outputs[1].Value != 1000 || outputs[2].Value != 20 {
		t.Fatalf("child not placed at parent_index: %+v", outputs)
	}
	if outputs[3].Value != 0 || string(outputs[3].Script) != string(feeAnchor.Script) {
		t.Fatalf("fee anchor not appended last: %+v", outputs[3])
	}
}

func TestPlaceChildAmongSiblingsRejectsOutOfRangeIndex(t *testing.T) {
	child := txOutput{Value: 1000}
	siblings := []SiblingNode{{Value: 10}}
	_, err := placeChildAmongSiblings(child, siblings, 2, nil)
	code, ok := CodeOf(err)
	if !ok || code != ErrReconstructionFailure {
		t.Fatalf("want ErrReconstructionFailure, got %v", err)
	}
}

func TestPlaceChildAmongSiblingsAcceptsIndexAtSiblingCount(t *testing.T) {
	child := txOutput{Value: 1000}
	siblings := []SiblingNode{{Value: 10}}
	outputs, err := placeChildAmongSiblings(child, siblings, 1, nil)
	if err != nil {
		t.Fatalf("placeChildAmongSiblings: %v", err)
	}
	if len(outputs) != 2 || outputs[1].Value != 1000 {
		t.Fatalf("child not placed at trailing slot: %+v", outputs)
	}
}
