package bls12381

import (
	"crypto/rand"
	"testing"

	"github.com/sbpairing/pairing/core"
)

func TestG2GeneratorInSubgroup(t *testing.T) {
	g := G2Generator()
	if !g.InSubgroup() {
		t.Fatalf("generator must be in the prime-order subgroup")
	}
}

func TestG2RandomOnCurveAndInSubgroup(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := G2Random(rand.Reader)
		if err != nil {
			t.Fatalf("G2Random: %v", err)
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

func TestG2NegCancels(t *testing.T) {
	p, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	sum := p.Add(p.Neg())
	if !sum.IsInfinity() {
		t.Fatalf("p + (-p) should be infinity")
	}
}

func TestG2ScalarMulAssociative(t *testing.T) {
	a, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	b, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	p, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	lhs := p.ScalarMul(a).ScalarMul(b)
	rhs := p.ScalarMul(a.Mul(b))
	if !lhs.Equal(rhs) {
		t.Fatalf("(p*a)*b != p*(a*b)")
	}
}

// TestG2ScalarMulMatchesPlainWNAF cross-checks the GLS-accelerated
// ScalarMul against a plain windowed-NAF ladder with no endomorphism
// split, over several random scalars and points.
func TestG2ScalarMulMatchesPlainWNAF(t *testing.T) {
	for i := 0; i < 8; i++ {
		k, err := FrRandom(rand.Reader)
		if err != nil {
			t.Fatalf("FrRandom: %v", err)
		}
		p, err := G2Random(rand.Reader)
		if err != nil {
			t.Fatalf("G2Random: %v", err)
		}
		kb := k.ToBig()
		if !p.ScalarMul(k).Equal(p.scalarMulPlainWNAF(&kb)) {
			t.Fatalf("GLS ScalarMul disagrees with plain windowed-NAF ladder")
		}
	}
}

// TestG2PsiIsScalarMulByX confirms the Frobenius endomorphism Psi acts
// on the r-torsion subgroup as multiplication by the signed BLS
// parameter x, the identity ScalarMul's GLS fast path relies on to
// build its psi^i(P) tables.
func TestG2PsiIsScalarMulByX(t *testing.T) {
	p, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	want := p.scalarMulPlainWNAF(&core.Big256{Words: [4]uint64{blsXAbs, 0, 0, 0}})
	if blsXIsNegative {
		want = want.Neg()
	}
	if !p.Psi().Equal(want) {
		t.Fatalf("psi(P) != [x]P")
	}
}
