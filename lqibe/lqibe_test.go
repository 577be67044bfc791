package lqibe

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/sbpairing/pairing/bls12381"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	params, msk, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	id := []byte("alice@example.com")
	sk := Keygen(msk, id)

	ct, err := Encrypt(params, id, 32, rand.Reader, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(sk, ct, id, 32, nil)
	if !bytes.Equal(got, ct.Tag) {
		t.Fatalf("decrypt produced a different tag than encrypt")
	}
}

func TestDecryptWithWrongIdentityDiffers(t *testing.T) {
	params, msk, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	aliceID := []byte("alice@example.com")
	bobID := []byte("bob@example.com")

	aliceSK := Keygen(msk, aliceID)
	bobSK := Keygen(msk, bobID)

	ct, err := Encrypt(params, aliceID, 32, rand.Reader, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	aliceTag := Decrypt(aliceSK, ct, aliceID, 32, nil)
	if !bytes.Equal(aliceTag, ct.Tag) {
		t.Fatalf("intended recipient should recover the same tag")
	}

	bobTag := Decrypt(bobSK, ct, bobID, 32, nil)
	if bytes.Equal(bobTag, ct.Tag) {
		t.Fatalf("wrong recipient should not recover the same tag")
	}
}

func TestCustomKDFIsUsed(t *testing.T) {
	params, msk, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	id := []byte("carol@example.com")
	sk := Keygen(msk, id)

	calls := 0
	kdf := KDF(func(q bls12381.G2Affine, u bls12381.G1Affine, gid bls12381.Fp12, outLen int) []byte {
		calls++
		return DefaultKDF(q, u, gid, outLen)
	})

	ct, err := Encrypt(params, id, 16, rand.Reader, kdf)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(sk, ct, id, 16, kdf)
	if !bytes.Equal(got, ct.Tag) {
		t.Fatalf("round trip mismatch with custom KDF")
	}
	if calls != 2 {
		t.Fatalf("expected the custom KDF to run twice (encrypt+decrypt), ran %d times", calls)
	}
}
