package vpack

import "bytes"

// scriptKind classifies an output script for exit-weight estimation
// (spec.md §4.5.3 PathDetail.exit_weight_vb, which the spec requires but
// leaves the estimation algorithm unspecified).
type scriptKind int

const (
	scriptUnknown scriptKind = iota
	scriptFeeAnchor
	scriptP2WPKH
	scriptP2TR
)

// classifyScript recognizes the handful of script shapes V-PACK fixtures
// use: the well-known fee-anchor script, P2WPKH (OP_0 <20-byte HASH160>),
// and P2TR (OP_1 <32-byte x-only key>).
func classifyScript(script []byte, feeAnchorScript []byte) scriptKind {
	if len(feeAnchorScript) > 0 && bytes.Equal(script, feeAnchorScript) {
		return scriptFeeAnchor
	}
	switch {
	case len(script) == 22 && script[0] == 0x00 && script[1] == 0x14:
		return scriptP2WPKH
	case len(script) == 34 && script[0] == 0x51 && script[1] == 0x20:
		return scriptP2TR
	default:
		return scriptUnknown
	}
}

// taprootXOnlyPubkey extracts the 32-byte x-only key from a P2TR
// scriptPubKey (OP_1 OP_PUSHBYTES_32 <32 bytes>), or ok=false if script is
// not shaped like one.
func taprootXOnlyPubkey(script []byte) (key [32]byte, ok bool) {
	if len(script) != 34 || script[0] != 0x51 || script[1] != 0x20 {
		return key, false
	}
	copy(key[:], script[2:34])
	return key, true
}

// exitWeightVB estimates the vbyte cost of the broadcastable transaction
// that would unilaterally spend childScript (used for PathDetail's
// exit_weight_vb: spec.md §4.5.3 describes it as the cost of "the
// equivalent broadcastable transaction", i.e. the exit path out of
// childScript, not of the cooperative path this level's own tx takes).
// The estimate is coarse on purpose — spec.md leaves the algorithm
// unspecified — but the witness template is picked by classifyScript
// rather than by hasSignature alone: a P2WPKH exit always carries an
// ECDSA signature plus pubkey regardless of whether this GenesisItem
// itself carries a cooperative BIP-340 co-signature, and an uncooperative
// taproot script-path exit is heavier than the cooperative keypath spend
// hasSignature implies.
func exitWeightVB(outputs []txOutput, feeAnchorScript []byte, childScript []byte, hasSignature bool) uint32 {
	const baseNonWitness = 10 + 41 // version+locktime+counts, 1 input
	var outputBytes int
	for _, o := range outputs {
		outputBytes += 8 + 1 + len(o.Script)
	}

	var witnessVB int
	switch classifyScript(childScript, feeAnchorScript) {
	case scriptP2WPKH:
		// sighash byte + <=72-byte DER sig, 33-byte compressed pubkey, 1/4 weight.
		witnessVB = (1 + 1 + 72 + 1 + 33) / 4
	case scriptP2TR:
		if hasSignature {
			// cooperative keypath spend: 1 stack item, 64-byte Schnorr sig, 1/4 weight.
			witnessVB = (1 + 1 + 64) / 4
		} else {
			// uncooperative script-path exit: sig + leaf script + control block.
			witnessVB = (1 + 1 + 64 + 1 + len(childScript) + 1 + 33) / 4
		}
	default:
		witnessVB = 0
	}

	return uint32(baseNonWitness+outputBytes) + uint32(witnessVB)
}
