package bls12381

import (
	"io"
	"math/bits"

	"github.com/sbpairing/pairing/core"
)

// Fq is an element of the BLS12-381 base field, held in Montgomery
// form: the stored value is x*R mod p for the canonical integer x,
// where R = 2^384 mod p. Every Fq value produced by this package
// satisfies 0 <= val < p.
type Fq struct {
	val core.Big384
}

// montgomeryReduce384 folds a 768-bit product back down to a reduced
// 384-bit Fq value, using CIOS (coarsely integrated operand scanning)
// reduction: for each of the six limbs, cancel it against the modulus
// using the precomputed inverse word, then shift.
func montgomeryReduce384(t *core.Big768) core.Big384 {
	z := t.Words
	for i := 0; i < 6; i++ {
		m := z[i] * fqInv
		var c uint64
		for j := 0; j < 6; j++ {
			hi, lo := bits.Mul64(m, fqModulus.Words[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, z[i+j], 0)
			lo, c2 = bits.Add64(lo, c, 0)
			z[i+j] = lo
			c = hi + c1 + c2
		}
		k := i + 6
		for c != 0 && k < 12 {
			var carryOut uint64
			z[k], carryOut = bits.Add64(z[k], c, 0)
			c = carryOut
			k++
		}
	}
	var result core.Big384
	copy(result.Words[:], z[6:12])
	if result.Cmp(&fqModulus) >= 0 {
		result.Sub(&result, &fqModulus)
	}
	return result
}

// fqFromBig converts the canonical integer x (x < p) into Montgomery form.
func fqFromBig(x *core.Big384) Fq {
	var prod core.Big768
	prod.Mul(x, &fqR2)
	return Fq{val: montgomeryReduce384(&prod)}
}

// FqZero returns the additive identity.
func FqZero() Fq { return Fq{} }

// FqOne returns the multiplicative identity (Montgomery form of 1, i.e. R mod p).
func FqOne() Fq { return Fq{val: fqR} }

// IsZero reports whether x is zero.
func (x Fq) IsZero() bool { return x.val.IsZero() }

// Equal reports whether x and y represent the same field element.
func (x Fq) Equal(y Fq) bool { return x.val.Equal(&y.val) }

// Add returns x + y.
func (x Fq) Add(y Fq) Fq {
	var r core.Big384
	carry := r.Add(&x.val, &y.val)
	if carry != 0 || r.Cmp(&fqModulus) >= 0 {
		r.Sub(&r, &fqModulus)
	}
	return Fq{val: r}
}

// Sub returns x - y.
func (x Fq) Sub(y Fq) Fq {
	var r core.Big384
	borrow := r.Sub(&x.val, &y.val)
	if borrow != 0 {
		r.Add(&r, &fqModulus)
	}
	return Fq{val: r}
}

// Neg returns -x.
func (x Fq) Neg() Fq {
	if x.IsZero() {
		return x
	}
	var r core.Big384
	r.Sub(&fqModulus, &x.val)
	return Fq{val: r}
}

// Double returns x + x.
func (x Fq) Double() Fq { return x.Add(x) }

// Mul returns x * y mod p via Montgomery multiplication.
func (x Fq) Mul(y Fq) Fq {
	var prod core.Big768
	prod.Mul(&x.val, &y.val)
	return Fq{val: montgomeryReduce384(&prod)}
}

// Square returns x * x mod p.
func (x Fq) Square() Fq {
	var prod core.Big768
	prod.Square(&x.val)
	return Fq{val: montgomeryReduce384(&prod)}
}

// Exp returns x^e for a big-endian exponent byte string (fast, variable-time).
func (x Fq) Exp(e []byte) Fq {
	r := FqOne()
	for _, b := range e {
		for bit := 7; bit >= 0; bit-- {
			r = r.Square()
			if (b>>uint(bit))&1 == 1 {
				r = r.Mul(x)
			}
		}
	}
	return r
}

// Inv returns x^-1, or zero if x is zero (documented degenerate case,
// matching the binary extended-gcd algorithm's behavior at the origin).
func (x Fq) Inv() Fq {
	if x.IsZero() {
		return FqZero()
	}
	// p - 2, computed once.
	var pMinus2 core.Big384
	pMinus2.Sub(&fqModulus, &core.Big384{Words: [6]uint64{2, 0, 0, 0, 0, 0}})
	return x.Exp(bytesOf384BE(&pMinus2))
}

// Legendre returns 1 if x is a nonzero quadratic residue, -1 if x is a
// nonzero non-residue, and 0 if x is zero.
func (x Fq) Legendre() int {
	if x.IsZero() {
		return 0
	}
	// (p-1)/2
	var e core.Big384
	e.Sub(&fqModulus, &core.One384)
	e.ShiftRight1(&e)
	r := x.Exp(bytesOf384BE(&e))
	one := FqOne()
	if r.Equal(one) {
		return 1
	}
	return -1
}

// Sqrt returns a square root of x using the p = 3 mod 4 shortcut
// result = x^((p+1)/4). The caller must verify by squaring if
// correctness matters: this routine returns a value whose square is
// not x when x is not a quadratic residue.
func (x Fq) Sqrt() (Fq, bool) {
	if x.IsZero() {
		return FqZero(), true
	}
	var e core.Big384
	e.Add(&fqModulus, &core.One384)
	// (p+1)/4: shift right twice.
	e.ShiftRight1(&e)
	e.ShiftRight1(&e)
	r := x.Exp(bytesOf384BE(&e))
	return r, r.Square().Equal(x)
}

// Sgn0 returns the low bit of the canonical (non-Montgomery) integer
// represented by x, per the hash-to-curve sign convention.
func (x Fq) Sgn0() int {
	return int(x.ToBig().Words[0] & 1)
}

// ToBig converts out of Montgomery form, returning the canonical integer.
func (x Fq) ToBig() core.Big384 {
	var widened core.Big768
	copy(widened.Words[:6], x.val.Words[:])
	return montgomeryReduce384(&widened)
}

// SetBytesBE loads a canonical big-endian 48-byte field element,
// rejecting values >= p.
func FqSetBytesBE(b []byte) (Fq, bool) {
	var raw core.Big384
	raw.SetBytesBE(b)
	if raw.Cmp(&fqModulus) >= 0 {
		return Fq{}, false
	}
	return fqFromBig(&raw), true
}

// BytesBE returns the canonical big-endian 48-byte encoding of x.
func (x Fq) BytesBE() [48]byte {
	canon := x.ToBig()
	return canon.BytesBE()
}

func bytesOf384BE(x *core.Big384) []byte {
	b := x.BytesBE()
	return b[:]
}

// FqRandom draws a uniform field element by rejection sampling: fill
// 48 bytes from the entropy source, mask the three unused high bits
// (p has 381 bits of content), and reject if the sample is >= p.
func FqRandom(rnd io.Reader) (Fq, error) {
	var buf [48]byte
	for {
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return Fq{}, err
		}
		buf[0] &= 0x1f // clear top 3 bits of the 381-bit modulus's byte representation
		var raw core.Big384
		raw.SetBytesBE(buf[:])
		if raw.Cmp(&fqModulus) < 0 {
			return fqFromBig(&raw), nil
		}
	}
}

// FqHashReduce strips the top three bits from a 48-byte hash output,
// reduces the remainder modulo p, and returns the stripped high bit
// (bit 381, the most significant content bit) as a "greater" flag
// consumed by the G1 hash-to-curve try-and-increment.
func FqHashReduce(h [48]byte) (Fq, bool) {
	greater := h[0]&0x20 != 0
	h[0] &= 0x1f
	var raw core.Big384
	raw.SetBytesBE(h[:])
	raw = reduceBig384(&raw, &fqModulus)
	return fqFromBig(&raw), greater
}

// reduceBig384 reduces a (possibly oversize but < 2*mod) value modulo
// mod by repeated subtraction; masked hash output is always < 2^381
// here, comfortably within range for a handful of conditional subtracts.
func reduceBig384(x *core.Big384, mod *core.Big384) core.Big384 {
	r := *x
	for r.Cmp(mod) >= 0 {
		r.Sub(&r, mod)
	}
	return r
}
