package bls12381

import "github.com/sbpairing/pairing/core"

// Fp12 is the full tower extension Fp6[w] / (w^2 - v), the target
// field GT that the pairing maps into. Elements are c0 + c1*w with
// c0, c1 in Fp6.
type Fp12 struct {
	c0, c1 Fp6
}

func Fp12Zero() Fp12 { return Fp12{} }

func Fp12One() Fp12 { return Fp12{c0: Fp6One()} }

func NewFp12(c0, c1 Fp6) Fp12 { return Fp12{c0: c0, c1: c1} }

func (e Fp12) IsZero() bool { return e.c0.IsZero() && e.c1.IsZero() }

func (e Fp12) Equal(f Fp12) bool { return e.c0.Equal(f.c0) && e.c1.Equal(f.c1) }

// IsOne reports whether e is the multiplicative identity.
func (e Fp12) IsOne() bool { return e.Equal(Fp12One()) }

func (e Fp12) Add(f Fp12) Fp12 {
	return Fp12{c0: e.c0.Add(f.c0), c1: e.c1.Add(f.c1)}
}

func (e Fp12) Sub(f Fp12) Fp12 {
	return Fp12{c0: e.c0.Sub(f.c0), c1: e.c1.Sub(f.c1)}
}

func (e Fp12) Neg() Fp12 {
	return Fp12{c0: e.c0.Neg(), c1: e.c1.Neg()}
}

// Mul returns e * f: (a+b*w)(c+d*w) = (ac+bd*v) + (ad+bc)*w, where
// w^2 = v so bd*v means shifting bd's coefficients via MulByV.
func (e Fp12) Mul(f Fp12) Fp12 {
	t1 := e.c0.Mul(f.c0)
	t2 := e.c1.Mul(f.c1)
	c0 := t1.Add(t2.MulByV())
	c1 := e.c0.Add(e.c1).Mul(f.c0.Add(f.c1)).Sub(t1).Sub(t2)
	return Fp12{c0: c0, c1: c1}
}

// Square returns e^2 via (a+b)(a+b*v) - ab - ab*v = a^2 + b^2*v.
func (e Fp12) Square() Fp12 {
	ab := e.c0.Mul(e.c1)
	t := e.c0.Add(e.c1)
	u := e.c0.Add(e.c1.MulByV())
	c0 := t.Mul(u).Sub(ab).Sub(ab.MulByV())
	c1 := ab.Add(ab)
	return Fp12{c0: c0, c1: c1}
}

// Inv returns e^-1 via (a - b*w) / (a^2 - b^2*v), or zero if e is zero.
func (e Fp12) Inv() Fp12 {
	if e.IsZero() {
		return Fp12Zero()
	}
	t := e.c0.Square().Sub(e.c1.Square().MulByV())
	tInv := t.Inv()
	return Fp12{c0: e.c0.Mul(tInv), c1: e.c1.Neg().Mul(tInv)}
}

// Conjugate returns c0 - c1*w, the order-2 automorphism used in the
// easy part of final exponentiation and, for unitary elements
// (norm 1), coincides with the inverse.
func (e Fp12) Conjugate() Fp12 {
	return Fp12{c0: e.c0, c1: e.c1.Neg()}
}

// Exp raises e to a big-endian exponent.
func (e Fp12) Exp(exponent []byte) Fp12 {
	r := Fp12One()
	for _, b := range exponent {
		for bit := 7; bit >= 0; bit-- {
			r = r.Square()
			if (b>>uint(bit))&1 == 1 {
				r = r.Mul(e)
			}
		}
	}
	return r
}

// expByXShifted raises e to |x|>>rightShift (the ladder simply stops
// rightShift bits early), optionally squaring once more afterward,
// then conjugates if x is negative. It generalizes ExpByX, which is
// the rightShift=0, no-extra-square case, and is also the building
// block finalExponentiation's hard part chains together five times.
func (e Fp12) expByXShifted(rightShift uint, squareAtEnd bool) Fp12 {
	r := Fp12One()
	for i := 63; i >= int(rightShift); i-- {
		r = r.Square()
		if (blsXAbs>>uint(i))&1 == 1 {
			r = r.Mul(e)
		}
	}
	if squareAtEnd {
		r = r.Square()
	}
	if blsXIsNegative {
		r = r.Conjugate()
	}
	return r
}

// ExpByX raises e to the BLS parameter |x|, conjugating the result
// afterward when the parameter is negative (it is, for BLS12-381).
// It runs the same square-and-multiply ladder (expByXShifted) that the
// final exponentiation's hard part uses.
func (e Fp12) ExpByX() Fp12 {
	return e.expByXShifted(0, false)
}

// Frobenius applies x -> x^(p^power) to the full Fp12 tower: the
// inner Fp6 Frobenius handles the v/v^2 coefficients, and the w
// coefficient additionally picks up the degree-12 Frobenius constant.
// Only powers 0-3 are supported, the only ones this package needs
// (the final exponentiation's hard part and GT exponentiation's
// powers-of-x ladder both stay within that range).
func (e Fp12) Frobenius(power int) Fp12 {
	c0 := e.c0.Frobenius(power)
	c1 := e.c1.Frobenius(power).MulByFp2(fp12FrobeniusCoeffC1(power))
	return Fp12{c0: c0, c1: c1}
}

func fp12FrobeniusCoeffC1(power int) Fp2 {
	switch power {
	case 0:
		return Fp2One()
	case 1:
		return NewFp2(fqFromBig(&rawFq12FrobC1_1c0), fqFromBig(&rawFq12FrobC1_1c1))
	case 2:
		return NewFp2(fqFromBig(&rawFq12FrobC1_2c0), FqZero())
	case 3:
		return NewFp2(fqFromBig(&rawFq12FrobC1_3c0), fqFromBig(&rawFq12FrobC1_3c1))
	}
	panic("bls12381: unsupported frobenius power")
}

// ExpGT raises e to an arbitrary Fr-range exponent the way GT
// exponentiation is specified: decompose the exponent into four
// digits base |x| (PowersOfX), build a^(x^i) for i=0..3 via i
// Frobenius applications (valid because a^q == a^x on the order-r
// subgroup GT elements live in), and run a joint square-and-multiply
// ladder over the four digits using CyclotomicSquare. This is the
// fast path final exponentiation's output (and anything else raising
// an already-reduced GT element to a scalar) should use in place of
// the generic Exp.
func (e Fp12) ExpGT(scalar core.Big256) Fp12 {
	digits := decomposePowersOfX(scalar)

	var t [4]Fp12
	for i := 0; i < 4; i++ {
		t[i] = e.Frobenius(i)
		if (i%2 == 0) != blsXIsNegative {
			t[i] = t[i].Conjugate()
		}
	}

	r := Fp12One()
	foundOne := false
	for i := blsXHighestSetBit; i >= 0; i-- {
		if foundOne {
			r = r.CyclotomicSquare()
		}
		for j := 0; j < 4; j++ {
			if digits[j].Bit(i) == 1 {
				r = r.Mul(t[j])
				foundOne = true
			}
		}
	}
	return r
}

// MulBy014 multiplies e by a sparse Fp12 element whose c0 coefficient
// has only its v^0 and v^1 Fp6 slots populated (c0, c3) and whose c1
// (w) coefficient has only its v^1 slot populated (c4) — the shape the
// Miller loop's line function naturally produces.
func (e Fp12) MulBy014(c0, c3, c4 Fp2) Fp12 {
	aa := e.c0.MulBy01(c0, c3)
	bb := e.c1.MulBy01(Fp2Zero(), c4)
	o := c3.Add(c4)
	c1 := e.c1.Add(e.c0).MulBy01(c0, o).Sub(aa).Sub(bb)
	c0r := bb.MulByV().Add(aa)
	return Fp12{c0: c0r, c1: c1}
}

// CyclotomicSquare specializes Square for elements already known to
// lie in the order-(p^4-p^2+1) cyclotomic subgroup, the set final
// exponentiation's easy part lands in. It uses the Granger-Scott
// decomposition, which trades the full nine-multiplication tower
// square for a handful of Fp2 squarings.
func (e Fp12) CyclotomicSquare() Fp12 {
	z0, z4, z3, z2, z1, z5 := e.c0.c0, e.c0.c1, e.c0.c2, e.c1.c0, e.c1.c1, e.c1.c2

	t0, t1 := fp4Square(z0, z1)
	z0 = t0.Sub(z0).Double().Add(t0)
	z1 = t1.Add(z1).Double().Add(t1)

	t0, t1 = fp4Square(z2, z3)
	t2, t3 := fp4Square(z4, z5)

	z4 = t0.Sub(z4).Double().Add(t0)
	z5 = t1.Add(z5).Double().Add(t1)

	t0 = mulByXi(t3)
	z2 = t0.Add(z2).Double().Add(t0)
	z3 = t2.Sub(z3).Double().Add(t2)

	return Fp12{
		c0: Fp6{c0: z0, c1: z4, c2: z3},
		c1: Fp6{c0: z2, c1: z1, c2: z5},
	}
}

// fp4Square computes the "virtual Fp4" squaring used inside
// CyclotomicSquare: given (a0, a1) interpreted as a0 + a1*w inside
// Fp2[w]/(w^2-xi), returns (a0^2 + xi*a1^2, 2*a0*a1).
func fp4Square(a0, a1 Fp2) (Fp2, Fp2) {
	t0 := a0.Square()
	t1 := a1.Square()
	c0 := mulByXi(t1).Add(t0)
	c1 := a0.Add(a1).Square().Sub(t0).Sub(t1)
	return c0, c1
}
