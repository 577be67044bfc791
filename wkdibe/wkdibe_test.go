package wkdibe

import (
	"crypto/rand"
	"testing"

	"github.com/sbpairing/pairing/bls12381"
)

func attr(index int, value uint64) Attribute {
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[31-i] = byte(value >> (8 * i))
	}
	v, _ := bls12381.FrSetBytesBE(b[:])
	return Attribute{Index: index, Value: v}
}

func randomMessage(t *testing.T, params Params) bls12381.Fp12 {
	t.Helper()
	s, err := bls12381.FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	sb := s.BytesBE()
	return params.Pairing.Exp(sb[:])
}

func TestDelegableKeyGenEncryptDecrypt(t *testing.T) {
	params, msk, err := Setup(10, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(5, 15)}}
	sk, err := KeyGen(params, msk, attrs, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	msg := randomMessage(t, params)
	ct, err := Encrypt(params, attrs, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(sk, ct)
	if !got.Equal(msg) {
		t.Fatalf("decrypt did not recover the encrypted message")
	}
}

func TestQualifyKeyThenDecrypt(t *testing.T) {
	params, msk, err := Setup(10, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	narrow := AttributeList{Attrs: []Attribute{attr(5, 15)}}
	sk, err := KeyGen(params, msk, narrow, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	wide := AttributeList{Attrs: []Attribute{attr(3, 12), attr(5, 15)}}
	qualified, err := QualifyKey(params, sk, wide, rand.Reader)
	if err != nil {
		t.Fatalf("QualifyKey: %v", err)
	}

	msg := randomMessage(t, params)
	ct, err := Encrypt(params, wide, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(qualified, ct)
	if !got.Equal(msg) {
		t.Fatalf("decrypt with qualified key did not recover the message")
	}
}

func TestNonDelegableKeyGenEncryptDecrypt(t *testing.T) {
	params, msk, err := Setup(6, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(1, 7), attr(4, 9)}}
	sk := NonDelegableKeyGen(params, msk, attrs)

	msg := randomMessage(t, params)
	ct, err := Encrypt(params, attrs, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(sk, ct)
	if !got.Equal(msg) {
		t.Fatalf("non-delegable key failed to decrypt")
	}
}

func TestAdjustNonDelegable(t *testing.T) {
	params, msk, err := Setup(6, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	from := AttributeList{Attrs: []Attribute{attr(1, 7)}}
	sk := NonDelegableKeyGen(params, msk, from)

	to := AttributeList{Attrs: []Attribute{attr(1, 9)}}
	adjusted := AdjustNonDelegable(sk, from, to)

	msg := randomMessage(t, params)
	ct, err := Encrypt(params, to, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(adjusted, ct)
	if !got.Equal(msg) {
		t.Fatalf("adjusted non-delegable key failed to decrypt under the new attribute value")
	}
}

func TestDecryptMasterBypassesDerivedKey(t *testing.T) {
	params, msk, err := Setup(4, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(0, 42)}}
	msg := randomMessage(t, params)
	ct, err := Encrypt(params, attrs, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := DecryptMaster(msk, ct)
	if !got.Equal(msg) {
		t.Fatalf("DecryptMaster did not recover the message")
	}
}

func TestResampleKeyStripsFreeSlots(t *testing.T) {
	params, msk, err := Setup(6, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(2, 3)}}
	sk, err := KeyGen(params, msk, attrs, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	pre := PrecomputeForAttrs(params, attrs)

	resampled, err := ResampleKey(params, pre, sk, false, rand.Reader)
	if err != nil {
		t.Fatalf("ResampleKey: %v", err)
	}
	if len(resampled.FreeSlots) != 0 {
		t.Fatalf("expected no free slots when supportFurtherQualification is false")
	}

	msg := randomMessage(t, params)
	ct, err := Encrypt(params, attrs, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got := Decrypt(resampled, ct)
	if !got.Equal(msg) {
		t.Fatalf("resampled key failed to decrypt")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	params, msk, err := Setup(5, true, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(2, 20)}}
	sk, err := KeyGen(params, msk, attrs, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	message, err := bls12381.FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	sig, err := Sign(params, sk, attrs, message, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(params, attrs, sig, message) {
		t.Fatalf("valid signature failed to verify")
	}

	otherMessage, err := bls12381.FrRandom(rand.Reader)
	if err != nil {
		t.Fatalf("FrRandom: %v", err)
	}
	if Verify(params, attrs, sig, otherMessage) {
		t.Fatalf("signature should not verify against a different message")
	}
}

func TestParamsMarshalUnmarshalRoundTrip(t *testing.T) {
	params, _, err := Setup(4, true, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	data := params.Marshal()
	got, err := UnmarshalParams(data)
	if err != nil {
		t.Fatalf("UnmarshalParams: %v", err)
	}
	if got.L != params.L || got.Signatures != params.Signatures {
		t.Fatalf("round trip changed L/Signatures")
	}
	if !got.Pairing.Equal(params.Pairing) {
		t.Fatalf("recomputed pairing value does not match")
	}
}

func TestSecretKeyMarshalUnmarshalRoundTrip(t *testing.T) {
	params, msk, err := Setup(6, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(2, 5)}}
	sk, err := KeyGen(params, msk, attrs, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	data := sk.Marshal()
	got, err := UnmarshalSecretKey(data)
	if err != nil {
		t.Fatalf("UnmarshalSecretKey: %v", err)
	}
	if !got.A0.Equal(sk.A0) || !got.A1.Equal(sk.A1) {
		t.Fatalf("round trip changed A0/A1")
	}
	if len(got.FreeSlots) != len(sk.FreeSlots) {
		t.Fatalf("round trip changed free slot count")
	}
}

func TestCiphertextMarshalUnmarshalRoundTrip(t *testing.T) {
	params, _, err := Setup(3, false, rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	attrs := AttributeList{Attrs: []Attribute{attr(0, 1)}}
	msg := randomMessage(t, params)
	ct, err := Encrypt(params, attrs, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	data := ct.Marshal()
	got, err := UnmarshalCiphertext(data)
	if err != nil {
		t.Fatalf("UnmarshalCiphertext: %v", err)
	}
	if !got.Blind.Equal(ct.Blind) || !got.B.Equal(ct.B) || !got.C.Equal(ct.C) {
		t.Fatalf("round trip mismatch")
	}
}

func TestUnmarshalSecretKeyRejectsBadLength(t *testing.T) {
	_, err := UnmarshalSecretKey(make([]byte, 10))
	if err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
