package bls12381

import (
	"io"
	"math/bits"

	"github.com/sbpairing/pairing/core"
)

// Fr is an element of the BLS12-381 scalar field (the prime order of
// G1/G2/GT), held in Montgomery form.
type Fr struct {
	val core.Big256
}

// frTwoAdicity is the 2-adicity of r-1 (the exponent s such that
// r-1 = 2^s * t with t odd), used both to bound the Tonelli-Shanks
// loop and to size its root-of-unity ladder.
const frTwoAdicity = 32

// frOddPart is t = (r-1) / 2^32.
var frOddPart = core.Big256{Words: [4]uint64{
	0xfffe5bfeffffffff, 0x09a1d80553bda402, 0x299d7d483339d808, 0x0000000073eda753,
}}

// frRootOfUnity is 5^t mod r in Montgomery form: a primitive 2^32-th
// root of unity, the starting point of the Tonelli-Shanks ladder.
var frRootOfUnity = Fr{val: core.Big256{Words: [4]uint64{
	0x9cab6d5c0c17f47c, 0x1ce1e93dfd4b71e5, 0x0d6db230471dd505, 0x3f0ee990743a3b6a,
}}}

func montgomeryReduce256(t *core.Big512) core.Big256 {
	z := t.Words
	for i := 0; i < 4; i++ {
		m := z[i] * frInv
		var c uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(m, frModulus.Words[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, z[i+j], 0)
			lo, c2 = bits.Add64(lo, c, 0)
			z[i+j] = lo
			c = hi + c1 + c2
		}
		k := i + 4
		for c != 0 && k < 8 {
			var carryOut uint64
			z[k], carryOut = bits.Add64(z[k], c, 0)
			c = carryOut
			k++
		}
	}
	var result core.Big256
	copy(result.Words[:], z[4:8])
	if result.Cmp(&frModulus) >= 0 {
		result.Sub(&result, &frModulus)
	}
	return result
}

func frFromBig(x *core.Big256) Fr {
	var prod core.Big512
	prod.Mul(x, &frR2)
	return Fr{val: montgomeryReduce256(&prod)}
}

// FrZero returns the additive identity.
func FrZero() Fr { return Fr{} }

// FrOne returns the multiplicative identity.
func FrOne() Fr { return Fr{val: frR} }

// IsZero reports whether x is zero.
func (x Fr) IsZero() bool { return x.val.IsZero() }

// Equal reports whether x and y represent the same field element.
func (x Fr) Equal(y Fr) bool { return x.val.Equal(&y.val) }

// Add returns x + y.
func (x Fr) Add(y Fr) Fr {
	var r core.Big256
	carry := r.Add(&x.val, &y.val)
	if carry != 0 || r.Cmp(&frModulus) >= 0 {
		r.Sub(&r, &frModulus)
	}
	return Fr{val: r}
}

// Sub returns x - y.
func (x Fr) Sub(y Fr) Fr {
	var r core.Big256
	borrow := r.Sub(&x.val, &y.val)
	if borrow != 0 {
		r.Add(&r, &frModulus)
	}
	return Fr{val: r}
}

// Neg returns -x.
func (x Fr) Neg() Fr {
	if x.IsZero() {
		return x
	}
	var r core.Big256
	r.Sub(&frModulus, &x.val)
	return Fr{val: r}
}

// Double returns x + x.
func (x Fr) Double() Fr { return x.Add(x) }

// Mul returns x * y mod r.
func (x Fr) Mul(y Fr) Fr {
	var prod core.Big512
	prod.Mul(&x.val, &y.val)
	return Fr{val: montgomeryReduce256(&prod)}
}

// Square returns x * x mod r.
func (x Fr) Square() Fr {
	var prod core.Big512
	prod.Square(&x.val)
	return Fr{val: montgomeryReduce256(&prod)}
}

// Exp returns x^e for a big-endian exponent byte string.
func (x Fr) Exp(e []byte) Fr {
	r := FrOne()
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

// Inv returns x^-1, or zero if x is zero.
func (x Fr) Inv() Fr {
	if x.IsZero() {
		return FrZero()
	}
	var rMinus2 core.Big256
	rMinus2.Sub(&frModulus, &core.Big256{Words: [4]uint64{2, 0, 0, 0}})
	return x.Exp(bytesOf256BE(&rMinus2))
}

// Legendre returns 1, -1 or 0 as x is a nonzero residue, nonzero
// non-residue, or zero.
func (x Fr) Legendre() int {
	if x.IsZero() {
		return 0
	}
	var e core.Big256
	e.Sub(&frModulus, &core.One256)
	e.ShiftRight1(&e)
	if x.Exp(bytesOf256BE(&e)).Equal(FrOne()) {
		return 1
	}
	return -1
}

// Sqrt computes a square root of x using full Tonelli-Shanks, since r
// is not 3 mod 4. Returns (root, true) if x is a residue.
//
// The reduction loop is bounded to frTwoAdicity iterations: the
// 2-power order of the residual decreases strictly every pass, so
// exceeding the bound indicates an internal inconsistency rather than
// a legitimate non-residue (those are rejected up front by Legendre).
func (x Fr) Sqrt() (Fr, bool) {
	if x.IsZero() {
		return FrZero(), true
	}
	if x.Legendre() != 1 {
		return FrZero(), false
	}

	var tExp core.Big256
	tExp.Add(&frOddPart, &core.One256)
	tExp.ShiftRight1(&tExp)

	var m uint = frTwoAdicity
	c := frRootOfUnity
	t := x.Exp(bytesOf256BE(&frOddPart))
	r := x.Exp(bytesOf256BE(&tExp))

	for i := 0; i < frTwoAdicity+1; i++ {
		if t.Equal(FrOne()) {
			return r, true
		}
		// Find the least i such that t^(2^i) == 1.
		tSq := t
		var leastI uint
		found := false
		for leastI = 1; leastI < m; leastI++ {
			tSq = tSq.Square()
			if tSq.Equal(FrOne()) {
				found = true
				break
			}
		}
		if !found {
			return FrZero(), false
		}
		b := c
		for j := uint(0); j < m-leastI-1; j++ {
			b = b.Square()
		}
		c = b.Square()
		t = t.Mul(c)
		r = r.Mul(b)
		m = leastI
	}
	return FrZero(), false
}

// Sgn0 returns the low bit of the canonical integer represented by x.
func (x Fr) Sgn0() int {
	return int(x.ToBig().Words[0] & 1)
}

// ToBig converts out of Montgomery form.
func (x Fr) ToBig() core.Big256 {
	var widened core.Big512
	copy(widened.Words[:4], x.val.Words[:])
	return montgomeryReduce256(&widened)
}

// FrSetBytesBE loads a canonical big-endian 32-byte scalar, rejecting
// values >= r.
func FrSetBytesBE(b []byte) (Fr, bool) {
	var raw core.Big256
	raw.SetBytesBE(b)
	if raw.Cmp(&frModulus) >= 0 {
		return Fr{}, false
	}
	return frFromBig(&raw), true
}

// BytesBE returns the canonical big-endian 32-byte encoding of x.
func (x Fr) BytesBE() [32]byte {
	canon := x.ToBig()
	return canon.BytesBE()
}

func bytesOf256BE(x *core.Big256) []byte {
	b := x.BytesBE()
	return b[:]
}

// FrRandom draws a uniform scalar by rejection sampling: fill 32
// bytes, mask the single unused high bit (r has 255 bits of content),
// and reject if the sample is >= r.
func FrRandom(rnd io.Reader) (Fr, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return Fr{}, err
		}
		buf[0] &= 0x7f
		var raw core.Big256
		raw.SetBytesBE(buf[:])
		if raw.Cmp(&frModulus) < 0 {
			return frFromBig(&raw), nil
		}
	}
}

// FrHashReduce strips the top bit from a 32-byte hash output and
// reduces the remainder modulo r.
func FrHashReduce(h [32]byte) Fr {
	h[0] &= 0x7f
	var raw core.Big256
	raw.SetBytesBE(h[:])
	for raw.Cmp(&frModulus) >= 0 {
		raw.Sub(&raw, &frModulus)
	}
	return frFromBig(&raw)
}
