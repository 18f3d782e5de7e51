package vpack

import "github.com/rs/zerolog"

// Status is a Verdict's pass/fail outcome.
type Status uint8

const (
	StatusFailure Status = iota
	StatusSuccess
)

// Verdict is the result of verifying a container against an expected
// identity (spec.md §6: `verify(container, expected_id, anchor_value?)`).
type Verdict struct {
	Status         Status
	Variant        Variant
	ReconstructedId VtxoId
	PathDetails    []PathDetail
	SignedTxs      []string
}

// Verify reconstructs c's leaf identity and compares it against expectedId,
// returning a Verdict whose Status reflects the match. anchorValue, when
// non-nil, additionally constrains the root level's consumed value
// (spec.md §6 `verify(container, expected_id, anchor_value?)`). logger is
// optional (nil defaults to zerolog.Nop()) and receives debug-level events
// only; Verify never holds a logger, or anything else, across calls, so
// concurrent callers never share mutable state (spec.md §5). Reconstruction
// errors (malformed structure, conservation failure, bad signature) are
// still returned as errors; only a clean reconstruction that disagrees with
// expectedId produces a Failure Verdict plus ErrIdentityMismatch.
func Verify(c *Container, expectedId VtxoId, anchorValue *uint64, logger *zerolog.Logger) (Verdict, error) {
	log := effectiveLogger(logger)
	variant, id, details, err := computeID(c, anchorValue)
	if err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{
		Variant:         variant,
		ReconstructedId: id,
		PathDetails:     details,
		SignedTxs:       collectUnsignedTxs(details),
	}

	if !id.Equal(expectedId) {
		verdict.Status = StatusFailure
		log.Debug().
			Str("reconstructed_id", id.String()).
			Str("expected_id", expectedId.String()).
			Msg("vpack: verify failed, identity mismatch")
		return verdict, vperrf(ErrIdentityMismatch, "reconstructed id %s != expected %s", id.String(), expectedId.String())
	}

	verdict.Status = StatusSuccess
	log.Debug().
		Str("reconstructed_id", id.String()).
		Int("path_steps", len(details)).
		Msg("vpack: verify succeeded")
	return verdict, nil
}

// collectUnsignedTxs gathers each level's preimage hex, in path order, as
// the Verdict's signed_txs field (spec.md §6) — "signed" in name only; the
// engine never attaches witness data, it reports the preimage that a
// co-signer would sign.
func collectUnsignedTxs(details []PathDetail) []string {
	if len(details) == 0 {
		return nil
	}
	out := make([]string, 0, len(details))
	for _, d := range details {
		out = append(out, d.UnsignedTxHex)
	}
	return out
}
