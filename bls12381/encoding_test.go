package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestG1CompressedRoundTrip(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := G1Random(rand.Reader)
		if err != nil {
			t.Fatalf("G1Random: %v", err)
		}
		enc := EncodeG1Compressed(p)
		got, err := DecodeG1Compressed(enc[:])
		if err != nil {
			t.Fatalf("DecodeG1Compressed: %v", err)
		}
		if !got.Equal(p) {
			t.Fatalf("round trip mismatch")
		}
	}
}

func TestG1UncompressedRoundTrip(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	enc := EncodeG1Uncompressed(p)
	got, err := DecodeG1Uncompressed(enc[:])
	if err != nil {
		t.Fatalf("DecodeG1Uncompressed: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("round trip mismatch")
	}
}

func TestG2CompressedRoundTrip(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := G2Random(rand.Reader)
		if err != nil {
			t.Fatalf("G2Random: %v", err)
		}
		enc := EncodeG2Compressed(p)
		got, err := DecodeG2Compressed(enc[:])
		if err != nil {
			t.Fatalf("DecodeG2Compressed: %v", err)
		}
		if !got.Equal(p) {
			t.Fatalf("round trip mismatch")
		}
	}
}

func TestDecodeG1WrongLengthRejected(t *testing.T) {
	_, err := DecodeG1Compressed(make([]byte, G1CompressedSize-1))
	if err != ErrDecodeLength {
		t.Fatalf("expected ErrDecodeLength, got %v", err)
	}
}

func TestDecodeG1BadFlagsRejected(t *testing.T) {
	buf := make([]byte, G1CompressedSize)
	// Infinity flag set together with nonzero coordinate bytes is
	// inconsistent regardless of which other flag bits are present.
	buf[0] = flagCompressed | flagInfinity
	buf[G1CompressedSize-1] = 0x01
	_, err := DecodeG1Compressed(buf)
	if err != ErrDecodeFlags {
		t.Fatalf("expected ErrDecodeFlags, got %v", err)
	}
}

func TestGTEncodeDecodeRoundTrip(t *testing.T) {
	p, err := G1Random(rand.Reader)
	if err != nil {
		t.Fatalf("G1Random: %v", err)
	}
	q, err := G2Random(rand.Reader)
	if err != nil {
		t.Fatalf("G2Random: %v", err)
	}
	gt := Pairing(p.ToAffine(), q.ToAffine())
	enc := EncodeGT(gt)
	got, err := DecodeGT(enc[:])
	if err != nil {
		t.Fatalf("DecodeGT: %v", err)
	}
	if !got.Equal(gt) {
		t.Fatalf("round trip mismatch")
	}
}
