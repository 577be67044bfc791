package bls12381

import (
	"io"

	"github.com/sbpairing/pairing/core"
)

// G2Jacobian is a point on the sextic twist curve y^2 = x^3 + 4(1+u)
// over Fp2, in Jacobian coordinates. The identity is (1, 1, 0).
type G2Jacobian struct {
	x, y, z Fp2
}

// G2Affine is a point on G2 in affine coordinates.
type G2Affine struct {
	x, y       Fp2
	IsInfinity bool
}

var g2TwistB = Fp2{c0: g1B, c1: g1B}

// G2Generator returns the standard generator of G2.
func G2Generator() G2Jacobian {
	x := NewFp2(fqFromBig(&rawG2Xc0), fqFromBig(&rawG2Xc1))
	y := NewFp2(fqFromBig(&rawG2Yc0), fqFromBig(&rawG2Yc1))
	return G2Affine{x: x, y: y}.ToJacobian()
}

// G2Identity returns the point at infinity.
func G2Identity() G2Jacobian {
	return G2Jacobian{x: Fp2One(), y: Fp2One()}
}

func (p G2Jacobian) IsInfinity() bool { return p.z.IsZero() }

func (a G2Affine) ToJacobian() G2Jacobian {
	if a.IsInfinity {
		return G2Identity()
	}
	return G2Jacobian{x: a.x, y: a.y, z: Fp2One()}
}

func (p G2Jacobian) ToAffine() G2Affine {
	if p.IsInfinity() {
		return G2Affine{IsInfinity: true}
	}
	zInv := p.z.Inv()
	zInv2 := zInv.Square()
	zInv3 := zInv2.Mul(zInv)
	return G2Affine{x: p.x.Mul(zInv2), y: p.y.Mul(zInv3)}
}

// IsOnCurve reports whether the affine point satisfies y^2 = x^3 + b'.
func (a G2Affine) IsOnCurve() bool {
	if a.IsInfinity {
		return true
	}
	lhs := a.y.Square()
	rhs := a.x.Square().Mul(a.x).Add(g2TwistB)
	return lhs.Equal(rhs)
}

func (p G2Jacobian) Neg() G2Jacobian {
	if p.IsInfinity() {
		return p
	}
	return G2Jacobian{x: p.x, y: p.y.Neg(), z: p.z}
}

func (p G2Jacobian) Equal(q G2Jacobian) bool {
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

func (p G2Jacobian) Double() G2Jacobian {
	if p.IsInfinity() || p.y.IsZero() {
		return G2Identity()
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
	return G2Jacobian{x: x3, y: y3, z: z3}
}

func (p G2Jacobian) Add(q G2Jacobian) G2Jacobian {
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
		return G2Identity()
	}

	h := u2.Sub(u1)
	i := h.Double().Square()
	j := h.Mul(i)
	r := s2.Sub(s1).Double()
	v := u1.Mul(i)

	x3 := r.Square().Sub(j).Sub(v.Double())
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Double())
	z3 := p.z.Add(q.z).Square().Sub(z1z1).Sub(z2z2).Mul(h)

	return G2Jacobian{x: x3, y: y3, z: z3}
}

func (p G2Jacobian) Sub(q G2Jacobian) G2Jacobian { return p.Add(q.Neg()) }

// Psi applies the G2 Frobenius endomorphism psi(x,y,z) = (x,y,z)
// untwisted, raised to the q-power Frobenius, and twisted back:
// psi(P) == [x]P on G2's r-torsion subgroup for the BLS parameter x,
// which is what lets ScalarMul's GLS fast path build a^(x^i) tables by
// repeated application of this single method instead of a full
// q-power exponentiation. Only the power-1 case is implemented, the
// only one ScalarMul ever needs (it always applies Psi iteratively).
func (p G2Jacobian) Psi() G2Jacobian {
	x := p.x.Frobenius()
	y := p.y.Frobenius()
	z := p.z.Frobenius()

	for i := 0; i < 4; i++ {
		x = x.Mul(g2TwistFrobeniusCoeff)
	}
	x = x.MulByNonResidue()

	y = y.MulByNonResidue()
	for i := 0; i < 3; i++ {
		y = y.Mul(g2TwistFrobeniusCoeff)
	}

	return G2Jacobian{x: x, y: y, z: z}
}

// g2TwistFrobeniusCoeff is xi^((p-1)/6), the sextic-twist coefficient
// Psi scales its twisted coordinates by; identical to the degree-12
// tower's power-1 Frobenius constant (fp12FrobeniusCoeffC1(1)) since
// both arise from applying Frobenius once to the twisting element.
var g2TwistFrobeniusCoeff = NewFp2(fqFromBig(&rawFq12FrobC1_1c0), fqFromBig(&rawFq12FrobC1_1c1))

// ScalarMul computes [k]P, decomposing k through the GLS tower
// endomorphism so the ladder only runs over a quarter as many bits:
// k == c0 + c1*|x| + c2*|x|^2 + c3*|x|^3 (PowersOfX, see decompose.go),
// and [k]P == sum [c_i] psi^i(P), psi the Frobenius endomorphism above.
// Unlike G1's GLV split, each psi^i(P) is a genuinely different point,
// so this builds four independent odd-multiples tables rather than
// reusing one, then runs a joint windowed-NAF ladder across all four.
func (p G2Jacobian) ScalarMul(k Fr) G2Jacobian {
	kb := k.ToBig()
	digitsWide := decomposePowersOfX(kb)

	var t [4]G2Jacobian
	t[0] = p
	for i := 1; i < 4; i++ {
		t[i] = t[i-1].Psi()
	}
	for i := 0; i < 4; i++ {
		if (i%2 == 0) != blsXIsNegative {
			t[i] = t[i].Neg()
		}
	}

	var digits [4][]int32
	var tables [4][]G2Jacobian
	maxLen := 0
	for i := 0; i < 4; i++ {
		digits[i] = wnaf256(&digitsWide[i])
		tables[i] = g2OddMultiples(t[i])
		if len(digits[i]) > maxLen {
			maxLen = len(digits[i])
		}
	}

	r := G2Identity()
	foundOne := false
	for i := maxLen - 1; i >= 0; i-- {
		if foundOne {
			r = r.Double()
		}
		for j := 0; j < 4; j++ {
			if i >= len(digits[j]) {
				continue
			}
			d := digits[j][i]
			if d == 0 {
				continue
			}
			term := tables[j][(abs32(d)-1)/2]
			if d < 0 {
				term = term.Neg()
			}
			r = r.Add(term)
			foundOne = true
		}
	}
	return r
}

// g2OddMultiples builds the table {P, 3P, 5P, ...} of odd multiples of
// p used by windowed NAF, sized for nafWindow.
func g2OddMultiples(p G2Jacobian) []G2Jacobian {
	half := 1 << (nafWindow - 1)
	table := make([]G2Jacobian, half/2)
	table[0] = p
	p2 := p.Double()
	for i := 1; i < len(table); i++ {
		table[i] = table[i-1].Add(p2)
	}
	return table
}

// scalarMulPlainWNAF computes [k]P by a single windowed-NAF
// double-and-add ladder with no endomorphism split, over an arbitrary
// non-negative scalar. ScalarMul uses the GLS-accelerated path above;
// this stays as a directly testable reference implementation.
func (p G2Jacobian) scalarMulPlainWNAF(k *core.Big256) G2Jacobian {
	digits := wnaf256(k)
	if len(digits) == 0 {
		return G2Identity()
	}
	table := g2OddMultiples(p)

	r := G2Identity()
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

// ClearCofactor multiplies by the (much larger) G2 cofactor.
func (p G2Jacobian) ClearCofactor() G2Jacobian {
	h := g2CofactorWords()
	r := G2Identity()
	for i := len(h)*64 - 1; i >= 0; i-- {
		r = r.Double()
		if bitOf(h, i) == 1 {
			r = r.Add(p)
		}
	}
	return r
}

func g2CofactorWords() []uint64 {
	var b core.Big768
	var full [96]byte
	copy(full[96-len(g2CofactorBE):], g2CofactorBE)
	var lo, hi [48]byte
	copy(hi[:], full[:48])
	copy(lo[:], full[48:])
	var hiBig, loBig core.Big384
	hiBig.SetBytesBE(hi[:])
	loBig.SetBytesBE(lo[:])
	copy(b.Words[:6], loBig.Words[:])
	copy(b.Words[6:], hiBig.Words[:])
	return b.Words[:]
}

func bitOf(words []uint64, i int) uint64 {
	if i < 0 || i/64 >= len(words) {
		return 0
	}
	return (words[i/64] >> uint(i%64)) & 1
}

// InSubgroup reports whether P lies in the order-r subgroup of G2.
func (p G2Jacobian) InSubgroup() bool {
	if p.IsInfinity() {
		return true
	}
	r := G2Identity()
	for i := frModulus.BitLen() - 1; i >= 0; i-- {
		r = r.Double()
		if frModulus.Bit(i) == 1 {
			r = r.Add(p)
		}
	}
	return r.IsInfinity()
}

// G2Random draws a uniform element of G2 by drawing fresh random Fp2
// samples until one is the x-coordinate of a curve point, then
// clearing the (large) cofactor.
func G2Random(rnd io.Reader) (G2Jacobian, error) {
	for {
		c0, err := FqRandom(rnd)
		if err != nil {
			return G2Jacobian{}, err
		}
		c1, err := FqRandom(rnd)
		if err != nil {
			return G2Jacobian{}, err
		}
		x := NewFp2(c0, c1)
		rhs := x.Square().Mul(x).Add(g2TwistB)
		y, ok := rhs.Sqrt()
		if !ok {
			continue
		}
		pt := G2Affine{x: x, y: y}.ToJacobian()
		return pt.ClearCofactor(), nil
	}
}

// hashToG2TryIncrement maps a pair of 48-byte digests onto G2 by
// treating them as a candidate Fp2 x-coordinate and incrementing the
// c0 component on non-residues, then clearing the cofactor.
func hashToG2TryIncrement(d0, d1 [48]byte) G2Jacobian {
	c0, _ := FqHashReduce(d0)
	c1, _ := FqHashReduce(d1)
	x := NewFp2(c0, c1)
	one := FqOne()
	for {
		rhs := x.Square().Mul(x).Add(g2TwistB)
		if y, ok := rhs.Sqrt(); ok {
			return G2Affine{x: x, y: y}.ToJacobian().ClearCofactor()
		}
		x = NewFp2(x.c0.Add(one), x.c1)
	}
}
