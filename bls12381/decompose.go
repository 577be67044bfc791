package bls12381

import "github.com/sbpairing/pairing/core"

// decomposePowersOfX splits y (assumed in [0, r)) into four digits
// c0..c3, each less than |x|, such that
// y == c0 + c1*|x| + c2*|x|^2 + c3*|x|^3. This always succeeds without
// any lattice reduction because r < |x|^4 for BLS12-381's parameter:
// repeated division by the 64-bit |x| is all PowersOfX needs.
func decomposePowersOfX(y core.Big256) [4]core.Big256 {
	var c [4]core.Big256
	cur := y
	for i := 0; i < 3; i++ {
		q, rem := core.DivModWord64(&cur, blsXAbs)
		c[i] = core.Big256{Words: [4]uint64{rem, 0, 0, 0}}
		cur = q
	}
	c[3] = cur
	return c
}

// decomposeLambda splits k (assumed in [0, r)) into signed half-width
// pieces c0, c1 such that k == c0 + c1*lambda (mod r), via the GLV
// lattice basis v1 = <1, -v1_2>, v2 = <v2_1, 1> (both satisfy
// x + lambda*y == 0 mod r). Both returned magnitudes fit comfortably
// in 128 bits: r's basis reduction for this curve is balanced, not
// the "badly unbalanced split" this package's multiply used to claim
// to justify skipping it.
func decomposeLambda(k core.Big256) (c0 core.Big256, c0Neg bool, c1 core.Big256, c1Neg bool) {
	var twoK core.Big256
	overflow := twoK.ShiftLeft1(&k)
	roundedB1 := 0
	if overflow != 0 || twoK.Cmp(&frModulus) >= 0 {
		roundedB1 = 1
	}

	var v1_2TimesK core.Big512
	v1_2TimesK.Mul(&rawGlvV1_2, &k)
	roundedB2 := core.DivBig512By256(&v1_2TimesK, &frModulus)

	var product core.Big512
	product.Mul(&roundedB2, &rawGlvV2_1)
	productLow := product.Low()
	if roundedB1 == 1 {
		var withOne core.Big256
		withOne.Add(&productLow, &core.One256)
		productLow = withOne
	}

	if k.Cmp(&productLow) < 0 {
		c0Neg = true
		c0.Sub(&productLow, &k)
	} else {
		c0Neg = false
		c0.Sub(&k, &productLow)
	}

	if roundedB1 == 0 {
		c1Neg = true
		c1 = roundedB2
	} else if rawGlvV1_2.Cmp(&roundedB2) < 0 {
		c1Neg = true
		c1.Sub(&roundedB2, &rawGlvV1_2)
	} else {
		c1Neg = false
		c1.Sub(&rawGlvV1_2, &roundedB2)
	}
	return c0, c0Neg, c1, c1Neg
}
