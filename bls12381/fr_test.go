package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestFrInverseRoundTrip(t *testing.T) {
	for i := 0; i < 32; i++ {
		x, err := FrRandom(rand.Reader)
		if err != nil {
			t.Fatalf("FrRandom: %v", err)
		}
		if x.IsZero() {
			continue
		}
		if !x.Inv().Mul(x).Equal(FrOne()) {
			t.Fatalf("x.Inv()*x != 1 for x=%v", x)
		}
	}
}

func TestFrSubUnderflowWrapsModR(t *testing.T) {
	a, _ := FrRandom(rand.Reader)
	b, _ := FrRandom(rand.Reader)
	diff := a.Sub(b)
	if !diff.Add(b).Equal(a) {
		t.Fatalf("(a-b)+b != a")
	}
}

func TestFrEncodeDecodeRoundTrip(t *testing.T) {
	x, err := FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	b := x.BytesBE()
	y, ok := FrSetBytesBE(b[:])
	if !ok {
		t.Fatalf("FrSetBytesBE rejected a valid encoding")
	}
	if !x.Equal(y) {
		t.Fatalf("round trip mismatch")
	}
}
