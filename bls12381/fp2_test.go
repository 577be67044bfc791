package bls12381

import (
	"crypto/rand"
	"testing"
)

func randFp2(t *testing.T) Fp2 {
	t.Helper()
	a, err := FqRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FqRandom: %v", err)
	}
	b, err := FqRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FqRandom: %v", err)
	}
	return NewFp2(a, b)
}

func TestFp2InverseRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		x := randFp2(t)
		if x.IsZero() {
			continue
		}
		if !x.Inv().Mul(x).Equal(Fp2One()) {
			t.Fatalf("x.Inv()*x != 1")
		}
	}
}

func TestFp2SqrtOfZero(t *testing.T) {
	root, ok := Fp2Zero().Sqrt()
	if !ok {
		t.Fatalf("Sqrt(0) should succeed")
	}
	if !root.Equal(Fp2Zero()) {
		t.Fatalf("Sqrt(0) should be 0, got %v", root)
	}
}

func TestFp2SqrtOfSquare(t *testing.T) {
	for i := 0; i < 16; i++ {
		x := randFp2(t)
		sq := x.Square()
		root, ok := sq.Sqrt()
		if !ok {
			t.Fatalf("Sqrt failed on a known square")
		}
		if !root.Square().Equal(sq) {
			t.Fatalf("sqrt(x^2)^2 != x^2")
		}
	}
}

func TestFp2ConjugateFrobenius(t *testing.T) {
	x := randFp2(t)
	if !x.Frobenius().Equal(x.Conjugate()) {
		t.Fatalf("Frobenius should coincide with Conjugate on Fp2")
	}
}
