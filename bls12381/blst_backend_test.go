//go:build blst

package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestMultiPairingCheckBlstAgreesWithNative(t *testing.T) {
	a, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	q, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}

	// e(aP, Q) * e(P, -aQ) == 1.
	ps := []G1Jacobian{p.ScalarMul(a), p}
	qs := []G2Jacobian{q, q.ScalarMul(a).Neg()}

	if !MultiPairingCheckBlst(ps, qs) {
		t.Fatal("MultiPairingCheckBlst rejected a valid relation")
	}

	affinePs := []G1Affine{ps[0].ToAffine(), ps[1].ToAffine()}
	affineQs := []G2Affine{qs[0].ToAffine(), qs[1].ToAffine()}
	if MultiPairingCheckBlst(ps, qs) != MultiPairingCheck(affinePs, affineQs) {
		t.Fatal("MultiPairingCheckBlst disagrees with the native implementation")
	}
}

func TestMultiPairingCheckBlstRejectsUnrelatedPoints(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	q, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	other, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}

	if MultiPairingCheckBlst([]G1Jacobian{p}, []G2Jacobian{q.Sub(other)}) {
		t.Fatal("MultiPairingCheckBlst accepted an unrelated pairing")
	}
}
