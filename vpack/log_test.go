package vpack

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestVerifyLoggerReceivesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	j := &IngredientJSON{}
	j.ReconstructionIngredients = ReconstructionIngredients{
		Topology:        "Chain",
		NSequence:       0,
		Amount:          1234,
		ScriptPubKeyHex: "0014" + repeatHex("11", 20),
		AnchorOutpoint:  repeatHex("09", 32) + ":0",
	}
	container, _, err := adaptB(j)
	if err != nil {
		t.Fatalf("adaptB: %v", err)
	}
	_, id, _, err := computeID(container, nil)
	if err != nil {
		t.Fatalf("computeID: %v", err)
	}

	if _, err := Verify(container, id, nil, &logger); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("verify succeeded")) {
		t.Fatalf("expected a verify-succeeded debug record, got %q", buf.String())
	}
}

func TestVerifyNilLoggerStaysSilent(t *testing.T) {
	j := &IngredientJSON{}
	j.ReconstructionIngredients = ReconstructionIngredients{
		Topology:        "Chain",
		NSequence:       0,
		Amount:          1234,
		ScriptPubKeyHex: "0014" + repeatHex("11", 20),
		AnchorOutpoint:  repeatHex("09", 32) + ":0",
	}
	container, _, err := adaptB(j)
	if err != nil {
		t.Fatalf("adaptB: %v", err)
	}
	_, id, _, err := computeID(container, nil)
	if err != nil {
		t.Fatalf("computeID: %v", err)
	}

	if _, err := Verify(container, id, nil, nil); err != nil {
		t.Fatalf("Verify with nil logger: %v", err)
	}
}
