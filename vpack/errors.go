// Package vpack implements the V-PACK binary container and the Variant 0x03
// (Chain) / Variant 0x04 (Tree) reconstruction engines used to independently
// verify a vUTXO leaf against its on-chain anchor.
package vpack

import "fmt"

// ErrorCode names one of the flat error kinds the engine can return. Callers
// match on Code rather than parsing Error() strings.
type ErrorCode string

const (
	ErrMalformedHeader     ErrorCode = "MalformedHeader"
	ErrChecksumMismatch    ErrorCode = "ChecksumMismatch"
	ErrTrailingBytes       ErrorCode = "TrailingBytes"
	ErrPayloadTruncated    ErrorCode = "PayloadTruncated"
	ErrLengthPrefixOverflow ErrorCode = "LengthPrefixOverflow"
	ErrNonCanonicalVarint  ErrorCode = "NonCanonicalVarint"
	ErrDepthExceeded       ErrorCode = "DepthExceeded"
	ErrArityViolation      ErrorCode = "ArityViolation"
	ErrReconstructionFailure ErrorCode = "ReconstructionFailure"
	ErrConservationError   ErrorCode = "ConservationError"
	ErrSignatureInvalid    ErrorCode = "SignatureInvalid"
	ErrIdentityMismatch    ErrorCode = "IdentityMismatch"
	ErrAdapterMismatch     ErrorCode = "AdapterMismatch"
	ErrFeeAnchorMissing    ErrorCode = "FeeAnchorMissing"
)

// VPackError is the engine's single error type. Msg carries at most one
// context datum per spec.md §7 (e.g. "expected 4 got 9").
type VPackError struct {
	Code ErrorCode
	Msg  string
}

func (e *VPackError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func vperr(code ErrorCode, msg string) error {
	return &VPackError{Code: code, Msg: msg}
}

func vperrf(code ErrorCode, format string, args ...any) error {
	return &VPackError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, if any. Returns ("", false) for any
// error that did not originate from this package.
func CodeOf(err error) (ErrorCode, bool) {
	ve, ok := err.(*VPackError)
	if !ok || ve == nil {
		return "", false
	}
	return ve.Code, true
}
