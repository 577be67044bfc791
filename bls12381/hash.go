package bls12381

// HashToG1 exposes the try-and-increment identity hash used by LQIBE
// and WKD-IBE to map an arbitrary 48-byte digest (typically the output
// of a caller's own hash function over an identity string) onto G1.
func HashToG1(digest [48]byte) G1Jacobian {
	return hashToG1TryIncrement(digest)
}

// HashToG2 is HashToG1's G2 counterpart, taking a pair of 48-byte
// digests that together seed the candidate Fp2 x-coordinate.
func HashToG2(d0, d1 [48]byte) G2Jacobian {
	return hashToG2TryIncrement(d0, d1)
}
