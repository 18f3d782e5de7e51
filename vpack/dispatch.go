package vpack

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// parseExpectedId parses RawEvidence.ExpectedVtxoId per kind: a bare 64-hex
// digest for Hash identities, or "txid:vout" for OutPoint identities.
func parseExpectedId(s string, kind IdKind) (VtxoId, error) {
	if s == "" {
		return VtxoId{}, vperr(ErrAdapterMismatch, "expected_vtxo_id missing")
	}
	switch kind {
	case IdKindHash:
		raw, err := decodeHexField("expected_vtxo_id", s)
		if err != nil {
			return VtxoId{}, err
		}
		if len(raw) != 32 {
			return VtxoId{}, vperrf(ErrAdapterMismatch, "expected_vtxo_id must be 32 bytes, got %d", len(raw))
		}
		reverseBytes(raw)
		h, err := hashFromCanonical(raw)
		if err != nil {
			return VtxoId{}, err
		}
		return NewHashId(h), nil
	case IdKindOutPoint:
		op, err := parseOutpointHex(s)
		if err != nil {
			return VtxoId{}, err
		}
		return NewOutPointId(op), nil
	default:
		return VtxoId{}, vperrf(ErrAdapterMismatch, "unknown id kind %d", kind)
	}
}

// VerifyJSON implements spec.md §6's `verify_json`: try Adapter A, then
// Adapter B. Per spec.md §7's dispatch discipline, only AdapterMismatch and
// IdentityMismatch are swallowed while falling through to the next adapter
// — any other error (malformed hex, conservation failure, bad signature)
// is returned immediately. logger is optional (nil defaults to
// zerolog.Nop()) and is passed through unchanged to Verify.
func VerifyJSON(raw []byte, logger *zerolog.Logger) (Verdict, error) {
	log := effectiveLogger(logger)
	var j IngredientJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return Verdict{}, vperrf(ErrAdapterMismatch, "invalid JSON: %v", err)
	}
	anchorValue, hasAnchorValue, err := anchorValueUint64(j.AnchorValue)
	if err != nil {
		return Verdict{}, err
	}
	var anchorValuePtr *uint64
	if hasAnchorValue {
		anchorValuePtr = &anchorValue
	}

	container, expectedId, errA := adaptA(&j)
	if errA == nil {
		verdict, err := Verify(container, expectedId, anchorValuePtr, logger)
		if err == nil || !swallowedDuringDispatch(err) {
			return verdict, err
		}
		log.Debug().Err(err).Msg("vpack: adapter A matched but verify did not, falling through to adapter B")
	} else if !swallowedDuringDispatch(errA) {
		return Verdict{}, errA
	}

	container, expectedId, errB := adaptB(&j)
	if errB != nil {
		if swallowedDuringDispatch(errB) {
			return Verdict{}, vperrf(ErrAdapterMismatch, "neither adapter accepted the record: A=%v B=%v", errA, errB)
		}
		return Verdict{}, errB
	}
	return Verify(container, expectedId, anchorValuePtr, logger)
}

func swallowedDuringDispatch(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	return code == ErrAdapterMismatch || code == ErrIdentityMismatch
}

// UnpackToJSON decodes a V-PACK byte stream and re-expresses it as the
// canonical ingredient JSON adapters consume (spec.md §6 `unpack_to_json`).
func UnpackToJSON(b []byte) ([]byte, error) {
	c, err := DecodeContainer(b)
	if err != nil {
		return nil, err
	}
	j := containerToIngredients(c)
	return json.MarshalIndent(j, "", "  ")
}

// ExportToVPack runs adapter dispatch against ingredientJSON and re-encodes
// the resulting container as canonical V-PACK bytes (spec.md §6
// `export_to_vpack`), stamping the testnet flag from isTestnet.
func ExportToVPack(ingredientJSON []byte, isTestnet bool) ([]byte, error) {
	var j IngredientJSON
	if err := json.Unmarshal(ingredientJSON, &j); err != nil {
		return nil, vperrf(ErrAdapterMismatch, "invalid JSON: %v", err)
	}

	container, _, errA := adaptA(&j)
	if errA != nil {
		container, _, errA = adaptB(&j)
		if errA != nil {
			return nil, vperrf(ErrAdapterMismatch, "neither adapter accepted the record: %v", errA)
		}
	}
	container.Header.IsTestnet = isTestnet
	return EncodeContainer(container)
}
