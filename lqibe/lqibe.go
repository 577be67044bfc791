// Package lqibe implements a compact identity-based encryption scheme
// after Libert-Quisquater: a ciphertext is one G1 element plus the
// output of a keyed hash of a pairing value, with no separate MAC or
// padding layer.
package lqibe

import (
	"io"

	"github.com/sbpairing/pairing/bls12381"
	"golang.org/x/crypto/blake2b"
)

// Params is the public parameters published by Setup: a generator P
// of G1 and its image sP under the master secret.
type Params struct {
	P  bls12381.G1Jacobian
	SP bls12381.G1Jacobian
}

// MasterSecret is the scalar s kept by the key authority.
type MasterSecret struct {
	s bls12381.Fr
}

// SecretKey is an identity's private key s*Q, where Q is the
// identity's hash-to-G2 point.
type SecretKey struct {
	sQ bls12381.G2Jacobian
}

// Ciphertext is (rP, tag), where tag is the KDF output used to mask
// the plaintext by the caller (this package does not itself perform
// symmetric encryption; see Encrypt/Decrypt for the exact contract).
type Ciphertext struct {
	RP  bls12381.G1Jacobian
	Tag []byte
}

// KDF derives key material from the three values the LQIBE correctness
// equation produces: the identity's G2 point, the ephemeral G1 point,
// and the pairing value, plus a caller-chosen output length.
type KDF func(q bls12381.G2Affine, u bls12381.G1Affine, gid bls12381.Fp12, outLen int) []byte

// DefaultKDF hashes the two points' canonical encodings through
// blake2b used as a keyed hash, keyed with the first 64 bytes of the
// pairing value's GT encoding. For outLen up to 64 the digest is
// outLen bytes long; for a larger outLen the 64-byte digest is
// zero-padded to outLen, so every byte past the 64th is zero.
func DefaultKDF(q bls12381.G2Affine, u bls12381.G1Affine, gid bls12381.Fp12, outLen int) []byte {
	gidBytes := bls12381.EncodeGT(gid)
	key := gidBytes[:]
	if len(key) > 64 {
		key = key[:64]
	}
	h, err := blake2b.New(outLen, key)
	if err != nil {
		h, _ = blake2b.New(blake2b.Size, key)
	}
	qb := bls12381.EncodeG2Uncompressed(q.ToJacobian())
	ub := bls12381.EncodeG1Uncompressed(u.ToJacobian())
	h.Write(qb[:])
	h.Write(ub[:])
	sum := h.Sum(nil)
	if len(sum) < outLen {
		out := make([]byte, outLen)
		copy(out, sum)
		return out
	}
	return sum[:outLen]
}

// Setup draws a random master secret s and generator P, publishing
// (P, sP) and keeping s.
func Setup(rnd io.Reader) (Params, MasterSecret, error) {
	s, err := bls12381.FrRandom(rnd)
	if err != nil {
		return Params{}, MasterSecret{}, err
	}
	p, err := bls12381.G1Random(rnd)
	if err != nil {
		return Params{}, MasterSecret{}, err
	}
	sp := p.ScalarMul(s)
	return Params{P: p, SP: sp}, MasterSecret{s: s}, nil
}

// hashID maps an identity's bytes onto G2 via blake2b then
// bls12381.HashToG2's try-and-increment.
func hashID(id []byte) bls12381.G2Jacobian {
	h0 := blake2b.Sum512(append([]byte{0x00}, id...))
	h1 := blake2b.Sum512(append([]byte{0x01}, id...))
	var d0, d1 [48]byte
	copy(d0[:], h0[:48])
	copy(d1[:], h1[:48])
	return bls12381.HashToG2(d0, d1)
}

// Keygen derives an identity's secret key s*Q from the master secret.
func Keygen(msk MasterSecret, id []byte) SecretKey {
	q := hashID(id)
	return SecretKey{sQ: q.ScalarMul(msk.s)}
}

// Encrypt picks a fresh ephemeral scalar r and outputs (rP, H(Q, rP,
// e(rsP, Q))), outLen bytes of tag material from h (DefaultKDF when h
// is nil).
func Encrypt(params Params, id []byte, outLen int, rnd io.Reader, h KDF) (Ciphertext, error) {
	if h == nil {
		h = DefaultKDF
	}
	r, err := bls12381.FrRandom(rnd)
	if err != nil {
		return Ciphertext{}, err
	}
	q := hashID(id)
	rp := params.P.ScalarMul(r)
	rsp := params.SP.ScalarMul(r)
	gid := bls12381.Pairing(rsp.ToAffine(), q.ToAffine())
	tag := h(q.ToAffine(), rp.ToAffine(), gid, outLen)
	return Ciphertext{RP: rp, Tag: tag}, nil
}

// Decrypt recomputes e(rP, sQ) and applies the same KDF; correctness
// follows from e(rP, sQ) = e(rsP, Q) (bilinearity).
func Decrypt(sk SecretKey, ct Ciphertext, id []byte, outLen int, h KDF) []byte {
	if h == nil {
		h = DefaultKDF
	}
	gid := bls12381.Pairing(ct.RP.ToAffine(), sk.sQ.ToAffine())
	q := hashID(id)
	return h(q.ToAffine(), ct.RP.ToAffine(), gid, outLen)
}
