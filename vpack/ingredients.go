package vpack

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// IngredientJSON is the issuer-supplied record both logic adapters attempt
// to parse (spec.md §6 "Issuer ingredient JSON"). Only
// ReconstructionIngredients' fields vary between topologies; everything
// else is read once by the dispatcher.
type IngredientJSON struct {
	Meta struct {
		Variant string `json:"variant"`
	} `json:"meta"`
	RawEvidence struct {
		ExpectedVtxoId string `json:"expected_vtxo_id"`
	} `json:"raw_evidence"`
	ReconstructionIngredients ReconstructionIngredients `json:"reconstruction_ingredients"`
	AnchorValue               json.RawMessage          `json:"anchor_value,omitempty"`
}

// ReconstructionIngredients is the union of fields Adapter A (Tree) and
// Adapter B (Chain) each read a subset of (spec.md §4.6).
type ReconstructionIngredients struct {
	Topology        string           `json:"topology"`
	TxVersion       int              `json:"tx_version,omitempty"`
	NSequence       uint32           `json:"nSequence"`
	FeeAnchorScript string           `json:"fee_anchor_script,omitempty"`
	IdType          string           `json:"id_type,omitempty"`
	Outputs         []ingredientOutput `json:"outputs,omitempty"`
	ChildOutput     *ingredientOutput  `json:"child_output,omitempty"`
	Siblings        []ingredientSibling `json:"siblings,omitempty"`
	Path            []ingredientPathItem `json:"path,omitempty"`
	Amount          uint64           `json:"amount,omitempty"`
	ScriptPubKeyHex string           `json:"script_pubkey_hex,omitempty"`
	ExitDelta       uint16           `json:"exit_delta,omitempty"`
	ParentOutpoint  string           `json:"parent_outpoint,omitempty"`
	AnchorOutpoint  string           `json:"anchor_outpoint,omitempty"`
}

type ingredientOutput struct {
	Value  uint64 `json:"value"`
	Script string `json:"script"`
}

type ingredientSibling struct {
	Hash   string `json:"hash"`
	Value  uint64 `json:"value"`
	Script string `json:"script"`
}

type ingredientPathItem struct {
	Siblings          []ingredientSibling `json:"siblings"`
	ParentIndex       uint32              `json:"parent_index"`
	Sequence          uint32              `json:"sequence"`
	ChildAmount       uint64              `json:"child_amount"`
	ChildScriptPubKey string              `json:"child_script_pubkey"`
	Signature         string              `json:"signature,omitempty"`
}

// anchorValueUint64 parses the top-level anchor_value, supplied either as a
// JSON string or a JSON number (spec.md §6 "consumes optional anchor_value
// as u64 supplied as string or integer").
func anchorValueUint64(raw json.RawMessage) (uint64, bool, error) {
	if len(raw) == 0 {
		return 0, false, nil
	}
	var asNumber uint64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, true, nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return 0, false, vperrf(ErrAdapterMismatch, "anchor_value is neither string nor integer: %v", err)
	}
	v, err := strconv.ParseUint(asString, 10, 64)
	if err != nil {
		return 0, false, vperrf(ErrAdapterMismatch, "anchor_value %q not a valid u64: %v", asString, err)
	}
	return v, true, nil
}

func decodeHexField(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, vperrf(ErrAdapterMismatch, "%s is not valid hex: %v", name, err)
	}
	return b, nil
}

func decodeHex32Field(name, s string) ([32]byte, error) {
	var out [32]byte
	b, err := decodeHexField(name, s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, vperrf(ErrAdapterMismatch, "%s must be 32 bytes, got %d", name, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func decodeHex64Field(name, s string) ([64]byte, error) {
	var out [64]byte
	b, err := decodeHexField(name, s)
	if err != nil {
		return out, err
	}
	if len(b) != 64 {
		return out, vperrf(ErrAdapterMismatch, "%s must be 64 bytes, got %d", name, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// parseOutpointHex parses the "txid:vout" display form used throughout the
// ingredient schema (spec.md §9 "Display of outpoints") back into an
// OutPoint. The hash portion is stored display-reversed, matching
// OutPoint.String's output.
func parseOutpointHex(s string) (OutPoint, error) {
	txidHex, voutStr, ok := splitLast(s, ':')
	if !ok {
		return OutPoint{}, vperrf(ErrAdapterMismatch, "outpoint %q missing ':vout' suffix", s)
	}
	raw, err := decodeHexField("outpoint txid", txidHex)
	if err != nil {
		return OutPoint{}, err
	}
	if len(raw) != 32 {
		return OutPoint{}, vperrf(ErrAdapterMismatch, "outpoint txid must be 32 bytes, got %d", len(raw))
	}
	reverseBytes(raw)
	hash, err := hashFromCanonical(raw)
	if err != nil {
		return OutPoint{}, err
	}
	vout, err := strconv.ParseUint(voutStr, 10, 32)
	if err != nil {
		return OutPoint{}, vperrf(ErrAdapterMismatch, "outpoint %q has non-numeric vout: %v", s, err)
	}
	return OutPoint{Hash: hash, Vout: uint32(vout)}, nil
}

func splitLast(s string, sep byte) (string, string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
