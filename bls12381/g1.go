package bls12381

import (
	"io"

	"github.com/sbpairing/pairing/core"
)

// G1Jacobian is a point on the BLS12-381 curve y^2 = x^3 + 4 over Fq,
// held in Jacobian coordinates (X, Y, Z) where the affine point is
// (X/Z^2, Y/Z^3). The point at infinity is represented as (1, 1, 0),
// matching the convention used throughout this package so that a
// freshly zeroed Z always denotes the identity regardless of X, Y.
type G1Jacobian struct {
	x, y, z Fq
}

// G1Affine is a point on G1 in affine coordinates; IsInfinity is
// tracked explicitly since (0,0) is a valid-looking but off-curve pair.
type G1Affine struct {
	x, y       Fq
	IsInfinity bool
}

var g1B = fqFromBig(&rawB)

// G1Generator returns the standard generator of G1.
func G1Generator() G1Jacobian {
	return G1Affine{x: fqFromBig(&rawG1X), y: fqFromBig(&rawG1Y)}.ToJacobian()
}

// G1Identity returns the point at infinity.
func G1Identity() G1Jacobian {
	return G1Jacobian{x: FqOne(), y: FqOne()}
}

func (p G1Jacobian) IsInfinity() bool { return p.z.IsZero() }

// ToJacobian lifts an affine point into Jacobian coordinates with Z=1.
func (a G1Affine) ToJacobian() G1Jacobian {
	if a.IsInfinity {
		return G1Identity()
	}
	return G1Jacobian{x: a.x, y: a.y, z: FqOne()}
}

// ToAffine lowers a Jacobian point to affine form.
func (p G1Jacobian) ToAffine() G1Affine {
	if p.IsInfinity() {
		return G1Affine{IsInfinity: true}
	}
	zInv := p.z.Inv()
	zInv2 := zInv.Square()
	zInv3 := zInv2.Mul(zInv)
	return G1Affine{x: p.x.Mul(zInv2), y: p.y.Mul(zInv3)}
}

// IsOnCurve reports whether the affine point satisfies y^2 = x^3 + b.
// The point at infinity is considered on-curve.
func (a G1Affine) IsOnCurve() bool {
	if a.IsInfinity {
		return true
	}
	lhs := a.y.Square()
	rhs := a.x.Square().Mul(a.x).Add(g1B)
	return lhs.Equal(rhs)
}

// Neg returns -P.
func (p G1Jacobian) Neg() G1Jacobian {
	if p.IsInfinity() {
		return p
	}
	return G1Jacobian{x: p.x, y: p.y.Neg(), z: p.z}
}

// Equal compares two Jacobian points by cross-multiplying through
// their Z-coordinates, avoiding an inversion.
func (p G1Jacobian) Equal(q G1Jacobian) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	z1z1 := p.z.Square()
	z2z2 := q.z.Square()
	u1 := p.x.Mul(z2z2)
	u2 := q.x.Mul(z1z1)
	s1 := p.y.Mul(q.z).Mul(z2z2)
	s2 := q.y.Mul(p.z).Mul(z1z1)
	return u1.Equal(u2) && s1.Equal(s2)
}

// Double returns P + P, following dbl-2009-l.
func (p G1Jacobian) Double() G1Jacobian {
	if p.IsInfinity() || p.y.IsZero() {
		return G1Identity()
	}
	a := p.x.Square()
	b := p.y.Square()
	c := b.Square()
	d := p.x.Add(b).Square().Sub(a).Sub(c).Double()
	e := a.Double().Add(a)
	x3 := e.Square().Sub(d.Double())
	eightC := c.Double().Double().Double()
	y3 := e.Mul(d.Sub(x3)).Sub(eightC)
	z3 := p.y.Double().Mul(p.z)
	return G1Jacobian{x: x3, y: y3, z: z3}
}

// Add returns P + Q, following add-2007-bl with infinity short-circuits.
func (p G1Jacobian) Add(q G1Jacobian) G1Jacobian {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	z1z1 := p.z.Square()
	z2z2 := q.z.Square()
	u1 := p.x.Mul(z2z2)
	u2 := q.x.Mul(z1z1)
	s1 := p.y.Mul(q.z).Mul(z2z2)
	s2 := q.y.Mul(p.z).Mul(z1z1)

	if u1.Equal(u2) {
		if s1.Equal(s2) {
			return p.Double()
		}
		return G1Identity()
	}

	h := u2.Sub(u1)
	i := h.Double().Square()
	j := h.Mul(i)
	r := s2.Sub(s1).Double()
	v := u1.Mul(i)

	x3 := r.Square().Sub(j).Sub(v.Double())
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Double())
	z3 := p.z.Add(q.z).Square().Sub(z1z1).Sub(z2z2).Mul(h)

	return G1Jacobian{x: x3, y: y3, z: z3}
}

// Sub returns P - Q.
func (p G1Jacobian) Sub(q G1Jacobian) G1Jacobian { return p.Add(q.Neg()) }

// ScalarMul computes [k]P, decomposing k through the GLV endomorphism
// so the double-and-add ladder only has to run over half as many
// bits: k == c0 + c1*lambda (mod r), and [k]P == [c0]P + [c1]phi(P),
// so a single shared odd-multiples table of P (phi applied on the fly
// to the c1 side) drives a joint windowed-NAF ladder over both halves
// at once.
func (p G1Jacobian) ScalarMul(k Fr) G1Jacobian {
	kb := k.ToBig()
	c0, c0Neg, c1, c1Neg := decomposeLambda(kb)
	return p.scalarMulGLV(c0, c0Neg, c1, c1Neg)
}

// scalarMulPlainWNAF computes [k]P by a single windowed-NAF
// double-and-add ladder with no endomorphism split, over an arbitrary
// non-negative scalar. ScalarMul uses the GLV-accelerated path above;
// this stays as a directly testable reference implementation and the
// base case scalarMulGLV's joint ladder reduces to.
func (p G1Jacobian) scalarMulPlainWNAF(k *core.Big256) G1Jacobian {
	digits := wnaf256(k)
	if len(digits) == 0 {
		return G1Identity()
	}
	table := g1OddMultiples(p)

	r := G1Identity()
	for i := len(digits) - 1; i >= 0; i-- {
		r = r.Double()
		d := digits[i]
		if d == 0 {
			continue
		}
		idx := (abs32(d) - 1) / 2
		term := table[idx]
		if d < 0 {
			term = term.Neg()
		}
		r = r.Add(term)
	}
	return r
}

// g1OddMultiples builds the table {P, 3P, 5P, ...} of odd multiples of
// p used by windowed NAF, sized for nafWindow.
func g1OddMultiples(p G1Jacobian) []G1Jacobian {
	half := 1 << (nafWindow - 1)
	table := make([]G1Jacobian, half/2)
	table[0] = p
	p2 := p.Double()
	for i := 1; i < len(table); i++ {
		table[i] = table[i-1].Add(p2)
	}
	return table
}

// scalarMulGLV runs the joint windowed-NAF double-and-add ladder over
// the GLV-decomposed digits c0, c1 (each already reduced to roughly
// half of k's bit width), applying EndomorphismPhi to the shared odd
// multiples table on the c1 side and negating per the sign flags
// decomposeLambda returns.
func (p G1Jacobian) scalarMulGLV(c0 core.Big256, c0Neg bool, c1 core.Big256, c1Neg bool) G1Jacobian {
	d0 := wnaf256(&c0)
	d1 := wnaf256(&c1)
	table := g1OddMultiples(p)

	n := len(d0)
	if len(d1) > n {
		n = len(d1)
	}

	r := G1Identity()
	foundOne := false
	for i := n - 1; i >= 0; i-- {
		if foundOne {
			r = r.Double()
		}
		if i < len(d0) && d0[i] != 0 {
			term := table[(abs32(d0[i])-1)/2]
			if (d0[i] < 0) != c0Neg {
				term = term.Neg()
			}
			r = r.Add(term)
			foundOne = true
		}
		if i < len(d1) && d1[i] != 0 {
			term := table[(abs32(d1[i])-1)/2].EndomorphismPhi()
			if (d1[i] < 0) != c1Neg {
				term = term.Neg()
			}
			r = r.Add(term)
			foundOne = true
		}
	}
	return r
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// EndomorphismPhi applies the G1 GLV endomorphism phi(x,y) = (beta*x, y),
// which acts on the r-torsion subgroup as multiplication by rawLambda.
// ScalarMul's GLV fast path calls this on the table entry for each
// nonzero digit of the lambda-scaled half of a decomposed scalar.
func (p G1Jacobian) EndomorphismPhi() G1Jacobian {
	if p.IsInfinity() {
		return p
	}
	beta := fqFromBig(&rawBeta)
	return G1Jacobian{x: p.x.Mul(beta), y: p.y, z: p.z}
}

// ClearCofactor multiplies by the G1 cofactor so that the result lies
// in the prime-order subgroup, for use on points produced by mapping
// an arbitrary field element onto the curve.
func (p G1Jacobian) ClearCofactor() G1Jacobian {
	var h core.Big384
	h.SetBytesBE(g1CofactorBE)
	return p.mulByBig384(&h)
}

func (p G1Jacobian) mulByBig384(k *core.Big384) G1Jacobian {
	r := G1Identity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = r.Double()
		if k.Bit(i) == 1 {
			r = r.Add(p)
		}
	}
	return r
}

// InSubgroup reports whether P lies in the order-r subgroup of the
// curve group, checked directly by testing [r]P == O.
func (p G1Jacobian) InSubgroup() bool {
	if p.IsInfinity() {
		return true
	}
	r := G1Identity()
	for i := frModulus.BitLen() - 1; i >= 0; i-- {
		r = r.Double()
		if frModulus.Bit(i) == 1 {
			r = r.Add(p)
		}
	}
	return r.IsInfinity()
}

// G1Random draws a uniform element of G1 by drawing fresh random Fq
// samples until one is the x-coordinate of a curve point, then
// clearing the cofactor.
func G1Random(rnd io.Reader) (G1Jacobian, error) {
	for {
		x, err := FqRandom(rnd)
		if err != nil {
			return G1Jacobian{}, err
		}
		rhs := x.Square().Mul(x).Add(g1B)
		y, ok := rhs.Sqrt()
		if !ok {
			continue
		}
		pt := G1Affine{x: x, y: y}.ToJacobian()
		return pt.ClearCofactor(), nil
	}
}

// hashToG1TryIncrement maps an arbitrary 48-byte digest onto G1 by
// treating it as a candidate x-coordinate and incrementing on
// non-residues, then clearing the cofactor. This is the simple
// try-and-increment construction LQIBE and WKD-IBE use for identity
// hashing, distinct from (and much simpler than) the RFC 9380
// constant-time SSWU map a general-purpose hash-to-curve needs.
func hashToG1TryIncrement(digest [48]byte) G1Jacobian {
	x, _ := FqHashReduce(digest)
	one := FqOne()
	for {
		rhs := x.Square().Mul(x).Add(g1B)
		if y, ok := rhs.Sqrt(); ok {
			return G1Affine{x: x, y: y}.ToJacobian().ClearCofactor()
		}
		x = x.Add(one)
	}
}
