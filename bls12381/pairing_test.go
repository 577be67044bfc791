package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestPairingBilinearInBothArguments(t *testing.T) {
	a, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	b, err := FrRandom(rand.Reader)
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

	lhs := Pairing(p.ScalarMul(a).ToAffine(), q.ScalarMul(b).ToAffine())
	rhs := Pairing(p.ToAffine(), q.ToAffine())
	abBytes := a.Mul(b).BytesBE()
	rhs = rhs.Exp(abBytes[:])

	if !lhs.Equal(rhs) {
		t.Fatalf("e(aP, bQ) != e(P,Q)^(ab)")
	}
}

func TestPairingWithInfinityIsOne(t *testing.T) {
	q, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	result := Pairing(G1Identity().ToAffine(), q.ToAffine())
	if !result.IsOne() {
		t.Fatalf("e(O, Q) should be 1")
	}
}

func TestMultiPairingCheckDetectsMismatch(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	q, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	// e(P, Q) * e(-P, Q) == 1
	if !MultiPairingCheck([]G1Affine{p.ToAffine(), p.Neg().ToAffine()}, []G2Affine{q.ToAffine(), q.ToAffine()}) {
		t.Fatalf("e(P,Q)*e(-P,Q) should equal 1")
	}
	other, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	if MultiPairingCheck([]G1Affine{p.ToAffine(), other.ToAffine()}, []G2Affine{q.ToAffine(), q.ToAffine()}) {
		t.Fatalf("mismatched pairing product should not check out")
	}
}
