package vpack

import "testing"

func TestClassifyScript(t *testing.T) {
	feeAnchorScript := []byte{0x51, 0x02, 0x4e, 0x73}
	p2wpkh := []byte{0x00, 0x14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	p2tr := append([]byte{0x51, 0x20}, make([]byte, 32)...)
	unknown := []byte{0x6a, 0x00}

	cases := []struct {
		name   string
		script []byte
		want   scriptKind
	}{
		{"fee anchor", feeAnchorScript, scriptFeeAnchor},
		{"p2wpkh", p2wpkh, scriptP2WPKH},
		{"p2tr", p2tr, scriptP2TR},
		{"unknown", unknown, scriptUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyScript(tc.script, feeAnchorScript)
			if got != tc.want {
				t.Fatalf("classifyScript(%x) = %v, want %v", tc.script, got, tc.want)
			}
		})
	}
}

func TestTaprootXOnlyPubkey(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	script := append([]byte{0x51, 0x20}, key[:]...)

	got, ok := taprootXOnlyPubkey(script)
	if !ok {
		t.Fatalf("expected taproot script to be recognized")
	}
	if got != key {
		t.Fatalf("extracted key mismatch: got %x want %x", got, key)
	}
}

func TestTaprootXOnlyPubkeyRejectsNonTaproot(t *testing.T) {
	_, ok := taprootXOnlyPubkey([]byte{0x00, 0x14, 1, 2, 3})
	if ok {
		t.Fatalf("expected non-taproot script to be rejected")
	}
}

func TestExitWeightVBTaprootSignedVsUnsigned(t *testing.T) {
	p2tr := append([]byte{0x51, 0x20}, make([]byte, 32)...)
	outputs := []txOutput{{Value: 1000, Script: p2tr}}
	unsigned := exitWeightVB(outputs, nil, p2tr, false)
	signed := exitWeightVB(outputs, nil, p2tr, true)
	if signed >= unsigned {
		t.Fatalf("cooperative keypath weight %d should be lighter than script-path weight %d", signed, unsigned)
	}
}

func TestExitWeightVBP2WPKHIgnoresHasSignature(t *testing.T) {
	p2wpkh := []byte{0x00, 0x14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	outputs := []txOutput{{Value: 1000, Script: p2wpkh}}
	withoutSig := exitWeightVB(outputs, nil, p2wpkh, false)
	withSig := exitWeightVB(outputs, nil, p2wpkh, true)
	if withoutSig != withSig {
		t.Fatalf("P2WPKH exit weight should not depend on hasSignature: %d vs %d", withoutSig, withSig)
	}
}

func TestExitWeightVBUnknownScriptHasNoWitness(t *testing.T) {
	outputs := []txOutput{{Value: 0, Script: []byte{0x6a, 0x00}}}
	got := exitWeightVB(outputs, nil, []byte{0x6a, 0x00}, true)
	want := exitWeightVB(outputs, nil, []byte{0x6a, 0x00}, false)
	if got != want {
		t.Fatalf("unclassified script weight should ignore hasSignature: %d vs %d", got, want)
	}
}
