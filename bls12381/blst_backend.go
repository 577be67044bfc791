//go:build blst

// MultiPairingCheckBlst offers a CGO-accelerated alternative to
// MultiPairingCheck for hosts that have the supranational/blst C
// library available. It reuses this package's own wire encodings
// (EncodeG1Compressed/EncodeG2Compressed, big-endian with the flag
// bits in the MSB of the first 48-byte limb) since they already match
// the IETF/zcash compressed-point convention blst expects, so no
// reformatting is needed at the boundary.
//
// Build with: go build -tags blst
package bls12381

import blst "github.com/supranational/blst/bindings/go"

// MultiPairingCheckBlst reports whether the product of e(p_i, q_i)
// over the given pairs equals the GT identity, using blst's
// accelerated Miller loop and final exponentiation instead of this
// package's own. Pairs with either point at infinity are skipped, for
// agreement with MultiPairingCheck's handling of that edge case.
func MultiPairingCheckBlst(ps []G1Jacobian, qs []G2Jacobian) bool {
	n := len(ps)
	if len(qs) < n {
		n = len(qs)
	}

	g1s := make([]blst.P1Affine, 0, n)
	g2s := make([]blst.P2Affine, 0, n)
	for i := 0; i < n; i++ {
		p := ps[i].ToAffine()
		q := qs[i].ToAffine()
		if p.IsInfinity || q.IsInfinity {
			continue
		}
		pc := EncodeG1Compressed(ps[i])
		qc := EncodeG2Compressed(qs[i])

		pa := new(blst.P1Affine).Uncompress(pc[:])
		if pa == nil {
			return false
		}
		qa := new(blst.P2Affine).Uncompress(qc[:])
		if qa == nil {
			return false
		}
		g1s = append(g1s, *pa)
		g2s = append(g2s, *qa)
	}
	if len(g1s) == 0 {
		return true
	}

	ml := blst.Fp12MillerLoopN(g2s, g1s)
	ml.FinalExp()
	one := blst.Fp12One()
	return ml.Equals(&one)
}
