package bls12381

// Package-level note on the GLV/GLS endomorphisms: G1Jacobian.ScalarMul
// and G2Jacobian.ScalarMul both decompose their scalar through the
// curve endomorphism (lambda for G1, the degree-4 GLS tower for G2,
// see decompose.go) before running a joint windowed-NAF ladder, so a
// full-width scalar multiply only costs a quarter-to-half the
// doublings of the naive ladder. The Miller loop below gets the same
// shortening for free: it iterates over the bits of the BLS parameter
// x rather than the full r-bit scalar, which is exactly what the
// optimal ate pairing's GLS-derived loop-shortening buys.

// g2LineCoeff holds a Miller-loop line function's coefficients in the
// form that stays entirely independent of the G1 point it will
// eventually be paired against: ell0 is used as-is, ell1Coeff gets
// scaled by the G1 point's x-coordinate, and the line's third slot is
// always just the G1 point's y-coordinate embedded in Fp2 (so it needs
// no precomputed coefficient at all). Precomputing and storing these
// per G2 point is what G2Prepared/PrepareG2 exist for.
type g2LineCoeff struct {
	ell0      Fp2
	ell1Coeff Fp2
}

// eval absorbs a G1 affine point's coordinates into the precomputed
// line, producing the sparse coefficients MulBy014 expects.
func (c g2LineCoeff) eval(px, py Fq) (ell0, ell1, ell4 Fp2) {
	return c.ell0, c.ell1Coeff.MulByFq(px), NewFp2(py, FqZero())
}

// lineOneCoeff is the coefficient pair that evaluates to the
// multiplicative identity, used when a line function degenerates
// (infinity input, or a vertical line whose contribution final
// exponentiation kills anyway).
var lineOneCoeff = g2LineCoeff{ell0: Fp2One()}

// prepareLineDouble evaluates the tangent line at r (given in both
// Jacobian and precomputed affine form), returning its coefficients
// and r doubled.
func prepareLineDouble(r G2Jacobian, rAffine G2Affine) (g2LineCoeff, G2Jacobian) {
	if r.IsInfinity() || rAffine.y.IsZero() {
		return lineOneCoeff, G2Identity()
	}
	rx, ry := rAffine.x, rAffine.y

	rxSq := rx.Square()
	three := FqOne().Double().Add(FqOne())
	num := NewFp2(three, FqZero()).Mul(rxSq)
	den := ry.Double()
	lambda := num.Mul(den.Inv())

	ell0 := lambda.Mul(rx).Sub(ry)
	return g2LineCoeff{ell0: ell0, ell1Coeff: lambda.Neg()}, r.Double()
}

// prepareLineAdd evaluates the chord through r and the fixed point q,
// returning its coefficients and r + q.
func prepareLineAdd(r G2Jacobian, rAffine G2Affine, q G2Jacobian, qAffine G2Affine) (g2LineCoeff, G2Jacobian) {
	if r.IsInfinity() {
		return lineOneCoeff, q
	}
	rx, ry := rAffine.x, rAffine.y
	qx, qy := qAffine.x, qAffine.y

	if rx.Equal(qx) && ry.Equal(qy) {
		return prepareLineDouble(r, rAffine)
	}

	num := qy.Sub(ry)
	den := qx.Sub(rx)
	if den.IsZero() {
		return lineOneCoeff, G2Identity()
	}
	lambda := num.Mul(den.Inv())

	ell0 := lambda.Mul(rx).Sub(ry)
	return g2LineCoeff{ell0: ell0, ell1Coeff: lambda.Neg()}, r.Add(q)
}

// G2Prepared is a G2 point with its Miller-loop line-function
// coefficients precomputed independent of any G1 point: one
// g2LineCoeff per doubling step, plus one more for every set bit of
// |x| below the leading bit. A caller that pairs the same G2 point
// against many different G1 points can prepare it once and reuse it;
// MultiPairingCheck itself prepares every pair's G2 point separately.
type G2Prepared struct {
	coeffs     []g2LineCoeff
	isInfinity bool
}

// PrepareG2 walks q through the Miller-loop doubling-and-add ladder
// once, recording each step's line coefficients for later reuse.
func PrepareG2(q G2Affine) G2Prepared {
	if q.IsInfinity {
		return G2Prepared{isInfinity: true}
	}
	qJac := q.ToJacobian()
	r := qJac
	coeffs := make([]g2LineCoeff, 0, blsXHighestSetBit+2)

	for i := blsXHighestSetBit - 1; i >= 0; i-- {
		rAffine := r.ToAffine()
		c, next := prepareLineDouble(r, rAffine)
		coeffs = append(coeffs, c)
		r = next

		if (blsXAbs>>uint(i))&1 == 1 {
			rAffine = r.ToAffine()
			c, next = prepareLineAdd(r, rAffine, qJac, q)
			coeffs = append(coeffs, c)
			r = next
		}
	}
	return G2Prepared{coeffs: coeffs}
}

// millerLoopPrepared runs the Miller loop for a single G1 point
// against an already-prepared G2 point.
func millerLoopPrepared(p G1Affine, prep G2Prepared) Fp12 {
	if p.IsInfinity || prep.isInfinity {
		return Fp12One()
	}

	f := Fp12One()
	idx := 0
	for i := blsXHighestSetBit - 1; i >= 0; i-- {
		ell0, ell1, ell4 := prep.coeffs[idx].eval(p.x, p.y)
		idx++
		f = f.Square().MulBy014(ell0, ell1, ell4)

		if (blsXAbs>>uint(i))&1 == 1 {
			ell0, ell1, ell4 = prep.coeffs[idx].eval(p.x, p.y)
			idx++
			f = f.MulBy014(ell0, ell1, ell4)
		}
	}

	if blsXIsNegative {
		f = f.Conjugate()
	}
	return f
}

// millerLoop computes the Miller loop of the optimal ate pairing,
// iterating over the bits of |x| and conjugating at the end to
// account for BLS12-381's negative parameter.
func millerLoop(p G1Affine, q G2Affine) Fp12 {
	if p.IsInfinity || q.IsInfinity {
		return Fp12One()
	}
	return millerLoopPrepared(p, PrepareG2(q))
}

// finalExponentiation raises f to (p^12-1)/r, split into an easy part
// (f^(p^6-1) then f^(p^2+1), both cheap since f^(p^6) is conjugation
// for the unitary subgroup) and the Fuentes-Castaneda hard part, an
// addition chain of five expByXShifted calls interleaved with
// conjugates and Frobenius(1)/(2)/(3) that reaches the full exponent
// without ever materializing it as a big integer.
func finalExponentiation(f Fp12) Fp12 {
	f1 := f.Conjugate()
	f2 := f.Inv()
	r := f1.Mul(f2)
	f2 = r
	r = r.Frobenius(2)
	r = r.Mul(f2)

	y0 := r.Square()
	y1 := y0.ExpByX()
	y2 := y1.expByXShifted(1, false)

	y3 := r.Conjugate()
	y1 = y1.Mul(y3)
	y1 = y1.Conjugate()
	y1 = y1.Mul(y2)
	y2 = y1.expByXShifted(1, true)
	y3 = y2.expByXShifted(1, true)
	y1 = y1.Conjugate()
	y3 = y3.Mul(y1)
	y1 = y1.Conjugate()
	y1 = y1.Frobenius(3)
	y2 = y2.Frobenius(2)
	y1 = y1.Mul(y2)
	y2 = y3.expByXShifted(1, true)
	y2 = y2.Mul(y0)
	y2 = y2.Mul(r)
	y1 = y1.Mul(y2)
	y2 = y3.Frobenius(1)
	y1 = y1.Mul(y2)
	return y1
}

// Pairing computes the optimal ate pairing e(P, Q) in GT.
func Pairing(p G1Affine, q G2Affine) Fp12 {
	return finalExponentiation(millerLoop(p, q))
}

// MultiPairingCheck reports whether the product of e(p_i, q_i) over
// the given pairs equals the GT identity. Every pair shares the same
// |x| bit schedule, so rather than running n independent Miller loops
// and multiplying their results, this prepares each active pair's G2
// side once and then walks the doubling-and-add ladder a single time,
// squaring one shared accumulator per step and folding in every
// pair's line evaluation at that step before moving on. Wrong-pair
// signature-aggregation verification is exactly this shape: one fixed
// G2 generator (or a handful of public keys) checked against many G1
// points, so sharing the squarings is the real saving over naively
// multiplying independent millerLoop results.
func MultiPairingCheck(ps []G1Affine, qs []G2Affine) bool {
	n := len(ps)
	if len(qs) < n {
		n = len(qs)
	}

	type active struct {
		p    G1Affine
		prep G2Prepared
	}
	pairs := make([]active, 0, n)
	for i := 0; i < n; i++ {
		if ps[i].IsInfinity || qs[i].IsInfinity {
			continue
		}
		pairs = append(pairs, active{p: ps[i], prep: PrepareG2(qs[i])})
	}

	f := Fp12One()
	idx := make([]int, len(pairs))
	for i := blsXHighestSetBit - 1; i >= 0; i-- {
		f = f.Square()
		for k := range pairs {
			ell0, ell1, ell4 := pairs[k].prep.coeffs[idx[k]].eval(pairs[k].p.x, pairs[k].p.y)
			idx[k]++
			f = f.MulBy014(ell0, ell1, ell4)
		}

		if (blsXAbs>>uint(i))&1 == 1 {
			for k := range pairs {
				ell0, ell1, ell4 := pairs[k].prep.coeffs[idx[k]].eval(pairs[k].p.x, pairs[k].p.y)
				idx[k]++
				f = f.MulBy014(ell0, ell1, ell4)
			}
		}
	}

	if blsXIsNegative {
		f = f.Conjugate()
	}
	return finalExponentiation(f).IsOne()
}
