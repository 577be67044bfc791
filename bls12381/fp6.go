package bls12381

// Fp6 is the cubic extension Fp2[v] / (v^3 - (u+1)): elements are
// c0 + c1*v + c2*v^2 with c0, c1, c2 in Fp2. The non-residue for this
// extension is xi = u+1, distinct from BN-style curves whose xi is
// 9+i; every xi-multiply below routes through mulByXi accordingly.
type Fp6 struct {
	c0, c1, c2 Fp2
}

func Fp6Zero() Fp6 { return Fp6{} }

func Fp6One() Fp6 { return Fp6{c0: Fp2One()} }

func NewFp6(c0, c1, c2 Fp2) Fp6 { return Fp6{c0: c0, c1: c1, c2: c2} }

func (e Fp6) IsZero() bool { return e.c0.IsZero() && e.c1.IsZero() && e.c2.IsZero() }

func (e Fp6) Equal(f Fp6) bool {
	return e.c0.Equal(f.c0) && e.c1.Equal(f.c1) && e.c2.Equal(f.c2)
}

// mulByXi multiplies an Fp2 element by the Fp6 non-residue u+1.
// (a+bu)(1+u) = (a-b) + (a+b)u, since u^2 = -1.
func mulByXi(e Fp2) Fp2 {
	return Fp2{c0: e.c0.Sub(e.c1), c1: e.c0.Add(e.c1)}
}

func (e Fp6) Add(f Fp6) Fp6 {
	return Fp6{c0: e.c0.Add(f.c0), c1: e.c1.Add(f.c1), c2: e.c2.Add(f.c2)}
}

func (e Fp6) Sub(f Fp6) Fp6 {
	return Fp6{c0: e.c0.Sub(f.c0), c1: e.c1.Sub(f.c1), c2: e.c2.Sub(f.c2)}
}

func (e Fp6) Neg() Fp6 {
	return Fp6{c0: e.c0.Neg(), c1: e.c1.Neg(), c2: e.c2.Neg()}
}

// Mul returns e * f via Toom-Cook/Karatsuba over the degree-2
// polynomial basis, reducing v^3 overflow through the xi multiply.
func (e Fp6) Mul(f Fp6) Fp6 {
	t0 := e.c0.Mul(f.c0)
	t1 := e.c1.Mul(f.c1)
	t2 := e.c2.Mul(f.c2)

	c0 := t0.Add(mulByXi(e.c1.Add(e.c2).Mul(f.c1.Add(f.c2)).Sub(t1).Sub(t2)))
	c1 := e.c0.Add(e.c1).Mul(f.c0.Add(f.c1)).Sub(t0).Sub(t1).Add(mulByXi(t2))
	c2 := e.c0.Add(e.c2).Mul(f.c0.Add(f.c2)).Sub(t0).Sub(t2).Add(t1)

	return Fp6{c0: c0, c1: c1, c2: c2}
}

// Square returns e^2.
func (e Fp6) Square() Fp6 {
	s0 := e.c0.Square()
	ab := e.c0.Mul(e.c1)
	s1 := ab.Double()
	s2 := e.c0.Add(e.c2).Sub(e.c1).Square()
	bc := e.c1.Mul(e.c2)
	s3 := bc.Double()
	s4 := e.c2.Square()

	c0 := s0.Add(mulByXi(s3))
	c1 := s1.Add(mulByXi(s4))
	c2 := s1.Add(s2).Add(s3).Sub(s0).Sub(s4)

	return Fp6{c0: c0, c1: c1, c2: c2}
}

// Inv returns e^-1, or zero if e is zero.
func (e Fp6) Inv() Fp6 {
	if e.IsZero() {
		return Fp6Zero()
	}
	a := e.c0.Square().Sub(mulByXi(e.c1.Mul(e.c2)))
	b := mulByXi(e.c2.Square()).Sub(e.c0.Mul(e.c1))
	c := e.c1.Square().Sub(e.c0.Mul(e.c2))

	f := e.c0.Mul(a).Add(mulByXi(e.c2.Mul(b).Add(e.c1.Mul(c))))
	fInv := f.Inv()

	return Fp6{c0: a.Mul(fInv), c1: b.Mul(fInv), c2: c.Mul(fInv)}
}

// MulByV multiplies e by v: (c0+c1 v+c2 v^2)*v = xi*c2 + c0*v + c1*v^2.
func (e Fp6) MulByV() Fp6 {
	return Fp6{c0: mulByXi(e.c2), c1: e.c0, c2: e.c1}
}

// MulByFp2 scales e by an Fp2 element applied to every coefficient.
func (e Fp6) MulByFp2(s Fp2) Fp6 {
	return Fp6{c0: e.c0.Mul(s), c1: e.c1.Mul(s), c2: e.c2.Mul(s)}
}

// MulBy01 multiplies e by a sparse element c0 + c1*v (c2 = 0), the
// shape produced by the G2-side line function evaluation.
func (e Fp6) MulBy01(c0, c1 Fp2) Fp6 {
	a := e.c0.Mul(c0)
	b := e.c1.Mul(c1)
	t1 := e.c2.Mul(c1)
	t1 = mulByXi(t1).Add(a)
	t2 := c0.Add(c1)
	tmp := e.c0.Add(e.c1)
	t2 = tmp.Mul(t2).Sub(a).Sub(b)
	t3 := e.c2.Mul(c0).Add(b)
	return Fp6{c0: t1, c1: t2, c2: t3}
}

// fp2Frobenius applies the Fp2 Frobenius endomorphism x -> x^(p^power):
// conjugation when power is odd, the identity when it's even (Fp2's
// only nontrivial Frobenius coefficient is -1, at the odd power).
func fp2Frobenius(e Fp2, power int) Fp2 {
	if power%2 == 1 {
		return e.Conjugate()
	}
	return e
}

// fp6FrobeniusCoeffC1 and fp6FrobeniusCoeffC2 are the Fp2 constants
// Frobenius multiplies the v and v^2 coefficients by, for powers 0-3
// (the only powers this package ever raises to — see Fp12.Frobenius).
func fp6FrobeniusCoeffC1(power int) Fp2 {
	switch power {
	case 0:
		return Fp2One()
	case 1:
		return NewFp2(FqZero(), fqFromBig(&rawFq6FrobC1_1))
	case 2:
		return NewFp2(fqFromBig(&rawBeta), FqZero())
	case 3:
		return NewFp2(FqZero(), FqOne())
	}
	panic("bls12381: unsupported frobenius power")
}

func fp6FrobeniusCoeffC2(power int) Fp2 {
	switch power {
	case 0:
		return Fp2One()
	case 1:
		return NewFp2(fqFromBig(&rawFq6FrobC2_1), FqZero())
	case 2:
		return NewFp2(fqFromBig(&rawFq6FrobC2_2), FqZero())
	case 3:
		return NewFp2(fqFromBig(&rawFq6FrobC2_3), FqZero())
	}
	panic("bls12381: unsupported frobenius power")
}

// Frobenius applies x -> x^(p^power) component-wise, scaling the v
// and v^2 coefficients by the corresponding non-residue power so the
// result lands back in the same Fp2[v]/(v^3-xi) representation.
func (e Fp6) Frobenius(power int) Fp6 {
	return Fp6{
		c0: fp2Frobenius(e.c0, power),
		c1: fp2Frobenius(e.c1, power).Mul(fp6FrobeniusCoeffC1(power)),
		c2: fp2Frobenius(e.c2, power).Mul(fp6FrobeniusCoeffC2(power)),
	}
}
