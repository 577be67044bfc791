package bls12381

// Fp2 is the quadratic extension Fq[u] / (u^2 + 1): elements are
// c0 + c1*u with c0, c1 in Fq. G2 coordinates and the first step of
// the tower live here.
type Fp2 struct {
	c0, c1 Fq
}

func Fp2Zero() Fp2 { return Fp2{} }

func Fp2One() Fp2 { return Fp2{c0: FqOne()} }

func NewFp2(c0, c1 Fq) Fp2 { return Fp2{c0: c0, c1: c1} }

func (e Fp2) IsZero() bool { return e.c0.IsZero() && e.c1.IsZero() }

func (e Fp2) Equal(f Fp2) bool { return e.c0.Equal(f.c0) && e.c1.Equal(f.c1) }

// Add returns e + f.
func (e Fp2) Add(f Fp2) Fp2 {
	return Fp2{c0: e.c0.Add(f.c0), c1: e.c1.Add(f.c1)}
}

// Sub returns e - f.
func (e Fp2) Sub(f Fp2) Fp2 {
	return Fp2{c0: e.c0.Sub(f.c0), c1: e.c1.Sub(f.c1)}
}

// Neg returns -e.
func (e Fp2) Neg() Fp2 {
	return Fp2{c0: e.c0.Neg(), c1: e.c1.Neg()}
}

// Double returns e + e.
func (e Fp2) Double() Fp2 {
	return Fp2{c0: e.c0.Double(), c1: e.c1.Double()}
}

// Mul returns e * f via the Karatsuba-style three-multiplication
// formula: (a0+a1 u)(b0+b1 u) = (a0 b0 - a1 b1) + ((a0+a1)(b0+b1) - a0 b0 - a1 b1) u.
func (e Fp2) Mul(f Fp2) Fp2 {
	v0 := e.c0.Mul(f.c0)
	v1 := e.c1.Mul(f.c1)
	c0 := v0.Sub(v1)
	c1 := e.c0.Add(e.c1).Mul(f.c0.Add(f.c1)).Sub(v0).Sub(v1)
	return Fp2{c0: c0, c1: c1}
}

// Square returns e^2 via (a0+a1 u)^2 = (a0+a1)(a0-a1) + 2 a0 a1 u.
func (e Fp2) Square() Fp2 {
	ab := e.c0.Mul(e.c1)
	c0 := e.c0.Add(e.c1).Mul(e.c0.Sub(e.c1))
	c1 := ab.Double()
	return Fp2{c0: c0, c1: c1}
}

// Conjugate returns the Fq-conjugate c0 - c1*u.
func (e Fp2) Conjugate() Fp2 {
	return Fp2{c0: e.c0, c1: e.c1.Neg()}
}

// MulByNonResidue returns u * e = -c1 + c0*u, since u^2 = -1. G2's Psi
// endomorphism uses this on both twisted coordinates alongside the
// sextic-twist Frobenius coefficient.
func (e Fp2) MulByNonResidue() Fp2 {
	return Fp2{c0: e.c1.Neg(), c1: e.c0}
}

// MulByFq returns e scaled by an Fq scalar.
func (e Fp2) MulByFq(s Fq) Fp2 {
	return Fp2{c0: e.c0.Mul(s), c1: e.c1.Mul(s)}
}

// Inv returns e^-1 via (a - b u) / (a^2 + b^2), or zero if e is zero.
func (e Fp2) Inv() Fp2 {
	if e.IsZero() {
		return Fp2Zero()
	}
	norm := e.c0.Square().Add(e.c1.Square())
	normInv := norm.Inv()
	return Fp2{c0: e.c0.Mul(normInv), c1: e.c1.Neg().Mul(normInv)}
}

// Frobenius applies the q-power Frobenius endomorphism, which on Fp2
// reduces to conjugation since q is odd.
func (e Fp2) Frobenius() Fp2 { return e.Conjugate() }

// Sgn0 follows the hash-to-curve sign convention:
// sgn0(c0) | (c0 == 0 && sgn0(c1)).
func (e Fp2) Sgn0() int {
	s0 := e.c0.Sgn0()
	zero0 := 0
	if e.c0.IsZero() {
		zero0 = 1
	}
	return s0 | (zero0 & e.c1.Sgn0())
}

// IsSquare reports whether e is a quadratic residue: in Fp2 over a
// p = 3 mod 4 base field, e is a square iff its norm c0^2+c1^2 is.
func (e Fp2) IsSquare() bool {
	if e.IsZero() {
		return true
	}
	norm := e.c0.Square().Add(e.c1.Square())
	return norm.Legendre() >= 0
}

// Sqrt returns a square root of e using the complex-method reduction
// to an Fq square root, trying both candidate signs for c0 and
// verifying the result by squaring.
func (e Fp2) Sqrt() (Fp2, bool) {
	if e.IsZero() {
		return Fp2Zero(), true
	}
	norm := e.c0.Square().Add(e.c1.Square())
	sqrtNorm, ok := norm.Sqrt()
	if !ok {
		return Fp2{}, false
	}
	two := FqOne().Double()
	twoInv := two.Inv()

	for _, candidate := range []Fq{e.c0.Add(sqrtNorm), e.c0.Sub(sqrtNorm)} {
		x0 := candidate.Mul(twoInv)
		sqrtX0, ok := x0.Sqrt()
		if !ok {
			continue
		}
		x1 := e.c1.Mul(sqrtX0.Double().Inv())
		candidateRoot := Fp2{c0: sqrtX0, c1: x1}
		if candidateRoot.Square().Equal(e) {
			return candidateRoot, true
		}
	}
	return Fp2{}, false
}
