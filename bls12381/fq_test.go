package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestFqInverseRoundTrip(t *testing.T) {
	for i := 0; i < 32; i++ {
		x, err := FqRandom(rand.Reader)
		if err != nil {
			t.Fatalf("FqRandom: %v", err)
		}
		if x.IsZero() {
			continue
		}
		got := x.Inv().Mul(x)
		if !got.Equal(FqOne()) {
			t.Fatalf("x.Inv()*x != 1 for x=%v", x)
		}
	}
}

func TestFqSqrtConsistency(t *testing.T) {
	for i := 0; i < 64; i++ {
		x, err := FqRandom(rand.Reader)
		if err != nil {
			t.Fatalf("FqRandom: %v", err)
		}
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

func TestFqEncodeDecodeRoundTrip(t *testing.T) {
	x, err := FqRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FqRandom: %v", err)
	}
	b := x.BytesBE()
	y, ok := FqSetBytesBE(b[:])
	if !ok {
		t.Fatalf("FqSetBytesBE rejected a valid encoding")
	}
	if !x.Equal(y) {
		t.Fatalf("round trip mismatch")
	}
}

func TestFqAddSubInverse(t *testing.T) {
	a, _ := FqRandom(rand.Reader)
	b, _ := FqRandom(rand.Reader)
	if !a.Add(b).Sub(b).Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
}
