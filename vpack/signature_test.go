package vpack

import (
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

func generateTestKeypair(t *testing.T) (*btcec.PrivateKey, [32]byte) {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	var xOnly [32]byte
	copy(xOnly[:], schnorr.SerializePubKey(priv.PubKey()))
	return priv, xOnly
}

func TestVerifyBIP340RoundTrip(t *testing.T) {
	priv, xOnly := generateTestKeypair(t)
	var digest [32]byte
	if _, err := rand.Read(digest[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	sig, err := schnorr.Sign(priv, digest[:])
	if err != nil {
		t.Fatalf("schnorr.Sign: %v", err)
	}
	var sigBytes [64]byte
	copy(sigBytes[:], sig.Serialize())

	ok, err := verifyBIP340(xOnly, sigBytes, digest)
	if err != nil {
		t.Fatalf("verifyBIP340: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid signature to verify")
	}
}

func TestVerifyBIP340RejectsWrongDigest(t *testing.T) {
	priv, xOnly := generateTestKeypair(t)
	var digest, otherDigest [32]byte
	digest[0] = 0x01
	otherDigest[0] = 0x02

	sig, err := schnorr.Sign(priv, digest[:])
	if err != nil {
		t.Fatalf("schnorr.Sign: %v", err)
	}
	var sigBytes [64]byte
	copy(sigBytes[:], sig.Serialize())

	ok, err := verifyBIP340(xOnly, sigBytes, otherDigest)
	if err != nil {
		t.Fatalf("verifyBIP340: %v", err)
	}
	if ok {
		t.Fatalf("expected signature over a different digest to fail verification")
	}
}

func TestCheckGenesisItemSignatureAbsentIsNotAnError(t *testing.T) {
	g := GenesisItem{Signature: nil}
	hasSig, err := checkGenesisItemSignature(g, []byte{0x51, 0x20}, [32]byte{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasSig {
		t.Fatalf("expected hasSignature=false")
	}
}

func TestCheckGenesisItemSignatureRejectsNonTaprootChild(t *testing.T) {
	sig := [64]byte{0x01}
	g := GenesisItem{Signature: &sig}
	_, err := checkGenesisItemSignature(g, []byte{0x00, 0x14, 1, 2, 3}, [32]byte{})
	code, ok := CodeOf(err)
	if !ok || code != ErrSignatureInvalid {
		t.Fatalf("want ErrSignatureInvalid, got %v", err)
	}
}

func TestCheckGenesisItemSignatureValid(t *testing.T) {
	priv, xOnly := generateTestKeypair(t)
	digest := [32]byte{0x07}

	sigObj, err := schnorr.Sign(priv, digest[:])
	if err != nil {
		t.Fatalf("schnorr.Sign: %v", err)
	}
	var sig [64]byte
	copy(sig[:], sigObj.Serialize())

	childScript := append([]byte{0x51, 0x20}, xOnly[:]...)
	g := GenesisItem{Signature: &sig}

	hasSig, err := checkGenesisItemSignature(g, childScript, digest)
	if err != nil {
		t.Fatalf("checkGenesisItemSignature: %v", err)
	}
	if !hasSig {
		t.Fatalf("expected hasSignature=true")
	}
}
