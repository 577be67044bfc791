package core

import "testing"

func TestBig256BytesRoundTrip(t *testing.T) {
	in := make([]byte, 32)
	for i := range in {
		in[i] = byte(i * 7)
	}
	var x Big256
	x.SetBytesBE(in)
	out := x.BytesBE()
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("round trip mismatch at byte %d: %x != %x", i, in[i], out[i])
		}
	}
}

func TestBig256AddSub(t *testing.T) {
	var a, b, sum, diff Big256
	a.SetBytesBE(bytesOfUint64(12345))
	b.SetBytesBE(bytesOfUint64(6789))
	sum.Add(&a, &b)
	diff.Sub(&sum, &b)
	if diff.Cmp(&a) != 0 {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestBig256ShiftRight1(t *testing.T) {
	var x, shifted Big256
	x.SetBytesBE(bytesOfUint64(4))
	shifted.ShiftRight1(&x)
	var want Big256
	want.SetBytesBE(bytesOfUint64(2))
	if shifted.Cmp(&want) != 0 {
		t.Fatalf("4>>1 != 2")
	}
}

func TestBig256IsZero(t *testing.T) {
	var z Big256
	if !z.IsZero() {
		t.Fatalf("zero-value Big256 should be IsZero")
	}
	var nz Big256
	nz.SetBytesBE(bytesOfUint64(1))
	if nz.IsZero() {
		t.Fatalf("1 should not be IsZero")
	}
}

func bytesOfUint64(v uint64) []byte {
	b := make([]byte, 32)
	for i := 0; i < 8; i++ {
		b[31-i] = byte(v >> (8 * i))
	}
	return b
}
