package wkdibe

import (
	"encoding/binary"
	"errors"

	"github.com/sbpairing/pairing/bls12381"
)

// ErrLengthMismatch is returned when a marshalled Params or SecretKey
// buffer's length is not compatible with any valid (slot count,
// signatures) pair.
var ErrLengthMismatch = errors.New("wkdibe: buffer length does not match any valid layout")

const (
	freeSlotIndexSize = 4
	freeSlotSize      = freeSlotIndexSize + bls12381.G1CompressedSize
)

// Marshal encodes Params as a flag byte (signature support), g and g1
// (G2, compressed), g2 and g3 (G1, compressed), hsig (G1, compressed,
// only if signatures is set), then the H vector (G1, compressed), one
// element per slot.
func (p Params) Marshal() []byte {
	flag := byte(0)
	if p.Signatures {
		flag = 1
	}
	out := make([]byte, 0, 1+2*bls12381.G2CompressedSize+2*bls12381.G1CompressedSize+len(p.H)*bls12381.G1CompressedSize)
	out = append(out, flag)
	g := bls12381.EncodeG2Compressed(p.G)
	g1 := bls12381.EncodeG2Compressed(p.G1)
	g2 := bls12381.EncodeG1Compressed(p.G2)
	g3 := bls12381.EncodeG1Compressed(p.G3)
	out = append(out, g[:]...)
	out = append(out, g1[:]...)
	out = append(out, g2[:]...)
	out = append(out, g3[:]...)
	if p.Signatures {
		hsig := bls12381.EncodeG1Compressed(p.HSig)
		out = append(out, hsig[:]...)
	}
	for _, h := range p.H {
		enc := bls12381.EncodeG1Compressed(h)
		out = append(out, enc[:]...)
	}
	return out
}

// UnmarshalParams is Marshal's inverse. The slot count is inferred
// from the buffer's remaining length after the fixed-size prefix; a
// remainder that isn't a whole number of G1 elements is rejected with
// ErrLengthMismatch. The cached pairing value e(g2, g1) is recomputed
// rather than stored, so this implementation always operates in the
// compact ("compressed") layout spec.md describes as optional.
func UnmarshalParams(data []byte) (Params, error) {
	fixed := 1 + 2*bls12381.G2CompressedSize + 2*bls12381.G1CompressedSize
	if len(data) < fixed {
		return Params{}, ErrLengthMismatch
	}
	signatures := data[0] != 0
	off := 1

	g, err := bls12381.DecodeG2Compressed(data[off : off+bls12381.G2CompressedSize])
	if err != nil {
		return Params{}, err
	}
	off += bls12381.G2CompressedSize
	g1, err := bls12381.DecodeG2Compressed(data[off : off+bls12381.G2CompressedSize])
	if err != nil {
		return Params{}, err
	}
	off += bls12381.G2CompressedSize
	g2, err := bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
	if err != nil {
		return Params{}, err
	}
	off += bls12381.G1CompressedSize
	g3, err := bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
	if err != nil {
		return Params{}, err
	}
	off += bls12381.G1CompressedSize

	hsig := bls12381.G1Identity()
	if signatures {
		if len(data) < off+bls12381.G1CompressedSize {
			return Params{}, ErrLengthMismatch
		}
		hsig, err = bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
		if err != nil {
			return Params{}, err
		}
		off += bls12381.G1CompressedSize
	}

	rest := data[off:]
	if len(rest)%bls12381.G1CompressedSize != 0 {
		return Params{}, ErrLengthMismatch
	}
	l := len(rest) / bls12381.G1CompressedSize
	h := make([]bls12381.G1Jacobian, l)
	for i := 0; i < l; i++ {
		start := i * bls12381.G1CompressedSize
		h[i], err = bls12381.DecodeG1Compressed(rest[start : start+bls12381.G1CompressedSize])
		if err != nil {
			return Params{}, err
		}
	}

	pairing := bls12381.Pairing(g2.ToAffine(), g1.ToAffine())
	return Params{
		Signatures: signatures,
		L:          l,
		G:          g,
		G1:         g1,
		G2:         g2,
		G3:         g3,
		H:          h,
		HSig:       hsig,
		Pairing:    pairing,
	}, nil
}

// Marshal encodes a SecretKey as a flag byte, a0 (G1, compressed), a1
// (G2, compressed), bsig (G1, compressed, only if signatures is set),
// then each FreeSlot as a 4-byte big-endian index followed by a G1
// compressed encoding.
func (sk SecretKey) Marshal() []byte {
	flag := byte(0)
	if sk.Signatures {
		flag = 1
	}
	out := make([]byte, 0, 1+bls12381.G1CompressedSize+bls12381.G2CompressedSize+len(sk.FreeSlots)*freeSlotSize)
	out = append(out, flag)
	a0 := bls12381.EncodeG1Compressed(sk.A0)
	a1 := bls12381.EncodeG2Compressed(sk.A1)
	out = append(out, a0[:]...)
	out = append(out, a1[:]...)
	if sk.Signatures {
		bsig := bls12381.EncodeG1Compressed(sk.BSig)
		out = append(out, bsig[:]...)
	}
	for _, fs := range sk.FreeSlots {
		var idx [freeSlotIndexSize]byte
		binary.BigEndian.PutUint32(idx[:], uint32(fs.Index))
		out = append(out, idx[:]...)
		enc := bls12381.EncodeG1Compressed(fs.B)
		out = append(out, enc[:]...)
	}
	return out
}

// UnmarshalSecretKey is Marshal's inverse.
func UnmarshalSecretKey(data []byte) (SecretKey, error) {
	fixed := 1 + bls12381.G1CompressedSize + bls12381.G2CompressedSize
	if len(data) < fixed {
		return SecretKey{}, ErrLengthMismatch
	}
	signatures := data[0] != 0
	off := 1

	a0, err := bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
	if err != nil {
		return SecretKey{}, err
	}
	off += bls12381.G1CompressedSize
	a1, err := bls12381.DecodeG2Compressed(data[off : off+bls12381.G2CompressedSize])
	if err != nil {
		return SecretKey{}, err
	}
	off += bls12381.G2CompressedSize

	bsig := bls12381.G1Identity()
	if signatures {
		if len(data) < off+bls12381.G1CompressedSize {
			return SecretKey{}, ErrLengthMismatch
		}
		bsig, err = bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
		if err != nil {
			return SecretKey{}, err
		}
		off += bls12381.G1CompressedSize
	}

	rest := data[off:]
	if len(rest)%freeSlotSize != 0 {
		return SecretKey{}, ErrLengthMismatch
	}
	n := len(rest) / freeSlotSize
	freeSlots := make([]FreeSlot, n)
	for i := 0; i < n; i++ {
		start := i * freeSlotSize
		idx := binary.BigEndian.Uint32(rest[start : start+freeSlotIndexSize])
		b, err := bls12381.DecodeG1Compressed(rest[start+freeSlotIndexSize : start+freeSlotSize])
		if err != nil {
			return SecretKey{}, err
		}
		freeSlots[i] = FreeSlot{Index: int(idx), B: b}
	}

	return SecretKey{A0: a0, A1: a1, BSig: bsig, Signatures: signatures, FreeSlots: freeSlots}, nil
}

// Marshal encodes a Ciphertext as blind (GT) ‖ b (G2, compressed) ‖ c
// (G1, compressed), a fixed-length encoding with no flag byte.
func (ct Ciphertext) Marshal() []byte {
	blind := bls12381.EncodeGT(ct.Blind)
	b := bls12381.EncodeG2Compressed(ct.B)
	c := bls12381.EncodeG1Compressed(ct.C)
	out := make([]byte, 0, len(blind)+len(b)+len(c))
	out = append(out, blind[:]...)
	out = append(out, b[:]...)
	out = append(out, c[:]...)
	return out
}

// UnmarshalCiphertext is Marshal's inverse.
func UnmarshalCiphertext(data []byte) (Ciphertext, error) {
	const want = 576 + bls12381.G2CompressedSize + bls12381.G1CompressedSize
	if len(data) != want {
		return Ciphertext{}, ErrLengthMismatch
	}
	var blindBuf [576]byte
	copy(blindBuf[:], data[:576])
	blind, err := bls12381.DecodeGT(blindBuf[:])
	if err != nil {
		return Ciphertext{}, err
	}
	off := 576
	b, err := bls12381.DecodeG2Compressed(data[off : off+bls12381.G2CompressedSize])
	if err != nil {
		return Ciphertext{}, err
	}
	off += bls12381.G2CompressedSize
	c, err := bls12381.DecodeG1Compressed(data[off : off+bls12381.G1CompressedSize])
	if err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{Blind: blind, B: b, C: c}, nil
}

// Marshal encodes a Signature as a0 (G1, compressed) ‖ a1 (G2,
// compressed).
func (sig Signature) Marshal() []byte {
	a0 := bls12381.EncodeG1Compressed(sig.A0)
	a1 := bls12381.EncodeG2Compressed(sig.A1)
	out := make([]byte, 0, len(a0)+len(a1))
	out = append(out, a0[:]...)
	out = append(out, a1[:]...)
	return out
}

// UnmarshalSignature is Marshal's inverse.
func UnmarshalSignature(data []byte) (Signature, error) {
	const want = bls12381.G1CompressedSize + bls12381.G2CompressedSize
	if len(data) != want {
		return Signature{}, ErrLengthMismatch
	}
	a0, err := bls12381.DecodeG1Compressed(data[:bls12381.G1CompressedSize])
	if err != nil {
		return Signature{}, err
	}
	a1, err := bls12381.DecodeG2Compressed(data[bls12381.G1CompressedSize:])
	if err != nil {
		return Signature{}, err
	}
	return Signature{A0: a0, A1: a1}, nil
}

// Marshal encodes a MasterKey as a single G1 compressed element.
func (msk MasterKey) Marshal() [bls12381.G1CompressedSize]byte {
	return bls12381.EncodeG1Compressed(msk.G2Alpha)
}

// UnmarshalMasterKey is Marshal's inverse.
func UnmarshalMasterKey(data []byte) (MasterKey, error) {
	if len(data) != bls12381.G1CompressedSize {
		return MasterKey{}, ErrLengthMismatch
	}
	g2alpha, err := bls12381.DecodeG1Compressed(data)
	if err != nil {
		return MasterKey{}, err
	}
	return MasterKey{G2Alpha: g2alpha}, nil
}
