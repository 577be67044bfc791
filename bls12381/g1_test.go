package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestG1ScalarMulByTwoMatchesDouble(t *testing.T) {
	k, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	doubled := p.Double()
	viaMul := p.ScalarMul(FrOne().Double())
	if !doubled.Equal(viaMul) {
		t.Fatalf("p.Double() != p.ScalarMul(2)")
	}
	_ = k
}

func TestG1GeneratorInSubgroup(t *testing.T) {
	g := G1Generator()
	if !g.InSubgroup() {
		t.Fatalf("generator must be in the prime-order subgroup")
	}
}

func TestG1RandomOnCurveAndInSubgroup(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := G1Random(rand.Reader)
		if err != nil {
			t.Fatalf("G1Random: %v", err)
		}
		a := p.ToAffine()
		if !a.IsOnCurve() {
			t.Fatalf("random point not on curve")
		}
		if !p.InSubgroup() {
			t.Fatalf("random point not in subgroup")
		}
	}
}

func TestG1NegCancels(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	sum := p.Add(p.Neg())
	if !sum.IsInfinity() {
		t.Fatalf("p + (-p) should be infinity")
	}
}

func TestG1EndomorphismPhiIsScalarMulByLambda(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	lambda := frFromBig(&rawLambda)
	if !p.EndomorphismPhi().Equal(p.ScalarMul(lambda)) {
		t.Fatalf("phi(P) != [lambda]P")
	}
}
