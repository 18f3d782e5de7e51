package vpack

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Hash256 is a canonical (non-reversed) 32-byte identifier, stored in the
// same internal byte order SHA-256 emits it. Display/hex conversion happens
// only at the formatting boundary (String), which byte-reverses per Bitcoin
// convention — spec.md §9 "Double-hashing byte order".
type Hash256 = chainhash.Hash

// doubleSHA256 computes SHA-256(SHA-256(x)) and returns it in canonical
// (internal) byte order.
func doubleSHA256(x []byte) Hash256 {
	return chainhash.DoubleHashH(x)
}

// hashFromCanonical builds a Hash256 from bytes already in canonical
// (internal, non-reversed) order, e.g. as read off the wire.
func hashFromCanonical(b []byte) (Hash256, error) {
	var h Hash256
	if len(b) != len(h) {
		return h, vperrf(ErrMalformedHeader, "hash length %d, want %d", len(b), len(h))
	}
	copy(h[:], b)
	return h, nil
}
