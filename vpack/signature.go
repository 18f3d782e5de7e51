package vpack

import "github.com/btcsuite/btcd/btcec/v2/schnorr"

// verifyBIP340 verifies sig as a BIP-340 Schnorr signature over digest using
// the x-only public key xOnlyKey (spec.md §4.5.2 "Signature check").
func verifyBIP340(xOnlyKey [32]byte, sig [64]byte, digest [32]byte) (bool, error) {
	pubkey, err := schnorr.ParsePubKey(xOnlyKey[:])
	if err != nil {
		return false, vperrf(ErrSignatureInvalid, "malformed x-only pubkey: %v", err)
	}
	parsedSig, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false, vperrf(ErrSignatureInvalid, "malformed signature: %v", err)
	}
	return parsedSig.Verify(digest[:], pubkey), nil
}

// checkGenesisItemSignature performs the signature check for one
// reconstructed level (spec.md §4.5.2): absence of a signature is not an
// error; presence-but-wrong is ErrSignatureInvalid.
func checkGenesisItemSignature(g GenesisItem, childScript []byte, digest [32]byte) (hasSignature bool, err error) {
	if g.Signature == nil {
		return false, nil
	}
	xOnly, ok := taprootXOnlyPubkey(childScript)
	if !ok {
		return true, vperr(ErrSignatureInvalid, "signature present but child script is not a taproot output")
	}
	ok, err = verifyBIP340(xOnly, *g.Signature, digest)
	if err != nil {
		return true, err
	}
	if !ok {
		return true, vperr(ErrSignatureInvalid, "BIP-340 verification failed")
	}
	return true, nil
}

// spendDigest derives the per-level signing digest a GenesisItem's
// signature (when present) is checked against: double-SHA256 over the
// level's preimage together with the value it consumes from the parent
// level. This is a deliberate simplification of BIP-341's taproot keypath
// sighash (which additionally commits to sighash epoch, all-prevout
// scripts/values, and annex/tapscript state) — spec.md does not pin an
// exact sighash byte layout, and full BIP-341 commitment is out of this
// engine's scope (spec.md §1 Non-goals: signature *generation*;
// verification here checks an engine-internal digest, not
// broadcastable-transaction byte-compat).
func spendDigest(preimage []byte, consumedValue uint64) [32]byte {
	buf := make([]byte, 0, len(preimage)+8)
	buf = append(buf, preimage...)
	buf = AppendU64le(buf, consumedValue)
	return doubleSHA256(buf)
}
