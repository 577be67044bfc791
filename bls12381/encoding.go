package bls12381

import "errors"

// Fixed-length point encodings, following the same three-flag-bit
// convention the tower's FqHashReduce/FqSetBytesBE already assume:
// the top three bits of the leading byte carry (in MSB-first order)
// the compressed flag, the infinity flag, and, for compressed
// non-infinity points, a "greater" flag choosing between the two
// square roots.
const (
	flagCompressed = 0x80
	flagInfinity   = 0x40
	flagGreater    = 0x20
	flagMask       = 0xe0
)

// ErrDecodeLength is returned when an encoded buffer has the wrong size.
var ErrDecodeLength = errors.New("bls12381: encoded point has the wrong length")

// ErrDecodeFlags is returned when an encoding's flag bits are
// internally inconsistent (e.g. infinity set together with nonzero
// coordinate bytes, or the greater flag set on an uncompressed point).
var ErrDecodeFlags = errors.New("bls12381: invalid point encoding flags")

// ErrDecodeNotOnCurve is returned when decoded coordinates fail the
// curve equation.
var ErrDecodeNotOnCurve = errors.New("bls12381: point is not on the curve")

// ErrDecodeNotInSubgroup is returned when a decoded point is on the
// curve but outside the prime-order subgroup.
var ErrDecodeNotInSubgroup = errors.New("bls12381: point is not in the prime-order subgroup")

// G1CompressedSize and friends are the fixed encoded lengths for each
// group and representation.
const (
	G1CompressedSize   = 48
	G1UncompressedSize = 96
	G2CompressedSize   = 96
	G2UncompressedSize = 192
)

// EncodeG1Compressed writes the 48-byte compressed encoding of p:
// the x-coordinate with the flag bits folded into its leading byte.
func EncodeG1Compressed(p G1Jacobian) [48]byte {
	a := p.ToAffine()
	var out [48]byte
	if a.IsInfinity {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	out = a.x.BytesBE()
	negY := a.y.Neg()
	greater := isGreaterFq(a.y, negY)
	out[0] |= flagCompressed
	if greater {
		out[0] |= flagGreater
	}
	return out
}

// isGreaterFq reports whether y's canonical integer exceeds -y's
// (i.e. y is the "larger" of the two square roots), by comparing
// their big-endian byte encodings.
func isGreaterFq(y, negY Fq) bool {
	yb := y.BytesBE()
	nb := negY.BytesBE()
	for i := range yb {
		if yb[i] != nb[i] {
			return yb[i] > nb[i]
		}
	}
	return false
}

// DecodeG1Compressed parses a 48-byte compressed G1 encoding,
// recovering y from x via the curve equation and the greater flag,
// and verifies the point lies in the prime-order subgroup.
func DecodeG1Compressed(b []byte) (G1Jacobian, error) {
	if len(b) != G1CompressedSize {
		return G1Jacobian{}, ErrDecodeLength
	}
	flags := b[0] & flagMask
	if flags&flagCompressed == 0 {
		return G1Jacobian{}, ErrDecodeFlags
	}
	if flags&flagInfinity != 0 {
		var rest [48]byte
		copy(rest[:], b)
		rest[0] &^= flagMask
		for _, v := range rest {
			if v != 0 {
				return G1Jacobian{}, ErrDecodeFlags
			}
		}
		return G1Identity(), nil
	}

	var xb [48]byte
	copy(xb[:], b)
	xb[0] &^= flagMask
	x, ok := FqSetBytesBE(xb[:])
	if !ok {
		return G1Jacobian{}, ErrDecodeFlags
	}

	rhs := x.Square().Mul(x).Add(g1B)
	y, ok := rhs.Sqrt()
	if !ok {
		return G1Jacobian{}, ErrDecodeNotOnCurve
	}
	negY := y.Neg()
	greater := flags&flagGreater != 0
	if isGreaterFq(y, negY) != greater {
		y = negY
	}

	pt := G1Affine{x: x, y: y}.ToJacobian()
	if !pt.InSubgroup() {
		return G1Jacobian{}, ErrDecodeNotInSubgroup
	}
	return pt, nil
}

// EncodeG1Uncompressed writes the 96-byte encoding of x || y.
func EncodeG1Uncompressed(p G1Jacobian) [96]byte {
	a := p.ToAffine()
	var out [96]byte
	if a.IsInfinity {
		out[0] = flagInfinity
		return out
	}
	xb := a.x.BytesBE()
	yb := a.y.BytesBE()
	copy(out[:48], xb[:])
	copy(out[48:], yb[:])
	return out
}

// DecodeG1Uncompressed parses a 96-byte uncompressed G1 encoding.
func DecodeG1Uncompressed(b []byte) (G1Jacobian, error) {
	if len(b) != G1UncompressedSize {
		return G1Jacobian{}, ErrDecodeLength
	}
	flags := b[0] & flagMask
	if flags&flagCompressed != 0 || flags&flagGreater != 0 {
		return G1Jacobian{}, ErrDecodeFlags
	}
	if flags&flagInfinity != 0 {
		var rest [96]byte
		copy(rest[:], b)
		rest[0] &^= flagMask
		for _, v := range rest {
			if v != 0 {
				return G1Jacobian{}, ErrDecodeFlags
			}
		}
		return G1Identity(), nil
	}
	var xb, yb [48]byte
	copy(xb[:], b[:48])
	copy(yb[:], b[48:])
	xb[0] &^= flagMask
	x, ok := FqSetBytesBE(xb[:])
	if !ok {
		return G1Jacobian{}, ErrDecodeFlags
	}
	y, ok := FqSetBytesBE(yb[:])
	if !ok {
		return G1Jacobian{}, ErrDecodeFlags
	}
	a := G1Affine{x: x, y: y}
	if !a.IsOnCurve() {
		return G1Jacobian{}, ErrDecodeNotOnCurve
	}
	pt := a.ToJacobian()
	if !pt.InSubgroup() {
		return G1Jacobian{}, ErrDecodeNotInSubgroup
	}
	return pt, nil
}

// EncodeG2Compressed writes the 96-byte compressed encoding of p.
// An Fp2 coordinate is always serialized high-word-first, c1 || c0
// (matching the tower's own big-endian I/O convention), so the flag
// bits fold into the MSB of x.c1, not x.c0.
func EncodeG2Compressed(p G2Jacobian) [96]byte {
	a := p.ToAffine()
	var out [96]byte
	if a.IsInfinity {
		out[0] = flagCompressed | flagInfinity
		return out
	}
	xc0 := a.x.c0.BytesBE()
	xc1 := a.x.c1.BytesBE()
	copy(out[:48], xc1[:])
	copy(out[48:], xc0[:])
	negY := a.y.Neg()
	greater := isGreaterFp2(a.y, negY)
	out[0] |= flagCompressed
	if greater {
		out[0] |= flagGreater
	}
	return out
}

func isGreaterFp2(y, negY Fp2) bool {
	if !y.c1.Equal(negY.c1) {
		return isGreaterFq(y.c1, negY.c1)
	}
	return isGreaterFq(y.c0, negY.c0)
}

// DecodeG2Compressed parses a 96-byte compressed G2 encoding.
func DecodeG2Compressed(b []byte) (G2Jacobian, error) {
	if len(b) != G2CompressedSize {
		return G2Jacobian{}, ErrDecodeLength
	}
	flags := b[0] & flagMask
	if flags&flagCompressed == 0 {
		return G2Jacobian{}, ErrDecodeFlags
	}
	if flags&flagInfinity != 0 {
		var rest [96]byte
		copy(rest[:], b)
		rest[0] &^= flagMask
		for _, v := range rest {
			if v != 0 {
				return G2Jacobian{}, ErrDecodeFlags
			}
		}
		return G2Identity(), nil
	}

	var xc1b, xc0b [48]byte
	copy(xc1b[:], b[:48])
	copy(xc0b[:], b[48:])
	xc1b[0] &^= flagMask
	c1, ok := FqSetBytesBE(xc1b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	c0, ok := FqSetBytesBE(xc0b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	x := NewFp2(c0, c1)

	rhs := x.Square().Mul(x).Add(g2TwistB)
	y, ok := rhs.Sqrt()
	if !ok {
		return G2Jacobian{}, ErrDecodeNotOnCurve
	}
	negY := y.Neg()
	greater := flags&flagGreater != 0
	if isGreaterFp2(y, negY) != greater {
		y = negY
	}

	pt := G2Affine{x: x, y: y}.ToJacobian()
	if !pt.InSubgroup() {
		return G2Jacobian{}, ErrDecodeNotInSubgroup
	}
	return pt, nil
}

// EncodeG2Uncompressed writes the 192-byte encoding of x || y, each
// an Fp2 element serialized c1 || c0.
func EncodeG2Uncompressed(p G2Jacobian) [192]byte {
	a := p.ToAffine()
	var out [192]byte
	if a.IsInfinity {
		out[0] = flagInfinity
		return out
	}
	xc0 := a.x.c0.BytesBE()
	xc1 := a.x.c1.BytesBE()
	yc0 := a.y.c0.BytesBE()
	yc1 := a.y.c1.BytesBE()
	copy(out[0:48], xc1[:])
	copy(out[48:96], xc0[:])
	copy(out[96:144], yc1[:])
	copy(out[144:192], yc0[:])
	return out
}

// DecodeG2Uncompressed parses a 192-byte uncompressed G2 encoding.
func DecodeG2Uncompressed(b []byte) (G2Jacobian, error) {
	if len(b) != G2UncompressedSize {
		return G2Jacobian{}, ErrDecodeLength
	}
	flags := b[0] & flagMask
	if flags&flagCompressed != 0 || flags&flagGreater != 0 {
		return G2Jacobian{}, ErrDecodeFlags
	}
	if flags&flagInfinity != 0 {
		var rest [192]byte
		copy(rest[:], b)
		rest[0] &^= flagMask
		for _, v := range rest {
			if v != 0 {
				return G2Jacobian{}, ErrDecodeFlags
			}
		}
		return G2Identity(), nil
	}
	var xc1b, xc0b, yc1b, yc0b [48]byte
	copy(xc1b[:], b[0:48])
	copy(xc0b[:], b[48:96])
	copy(yc1b[:], b[96:144])
	copy(yc0b[:], b[144:192])
	xc1b[0] &^= flagMask
	xc1, ok := FqSetBytesBE(xc1b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	xc0, ok := FqSetBytesBE(xc0b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	yc1, ok := FqSetBytesBE(yc1b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	yc0, ok := FqSetBytesBE(yc0b[:])
	if !ok {
		return G2Jacobian{}, ErrDecodeFlags
	}
	a := G2Affine{x: NewFp2(xc0, xc1), y: NewFp2(yc0, yc1)}
	if !a.IsOnCurve() {
		return G2Jacobian{}, ErrDecodeNotOnCurve
	}
	pt := a.ToJacobian()
	if !pt.InSubgroup() {
		return G2Jacobian{}, ErrDecodeNotInSubgroup
	}
	return pt, nil
}

// EncodeGT writes the 576-byte encoding of a GT element: the twelve
// Fq coefficients of its tower representation, each Fp2 pair ordered
// c1 || c0 (matching the tower's big-endian I/O convention), c0 before
// c1 before c2 within each Fp6, and the w-coefficient (c1) after the
// constant term (c0) in the outer Fp12.
func EncodeGT(f Fp12) [576]byte {
	var out [576]byte
	coeffs := [12]Fq{
		f.c0.c0.c1, f.c0.c0.c0,
		f.c0.c1.c1, f.c0.c1.c0,
		f.c0.c2.c1, f.c0.c2.c0,
		f.c1.c0.c1, f.c1.c0.c0,
		f.c1.c1.c1, f.c1.c1.c0,
		f.c1.c2.c1, f.c1.c2.c0,
	}
	for i, c := range coeffs {
		b := c.BytesBE()
		copy(out[i*48:(i+1)*48], b[:])
	}
	return out
}

// DecodeGT parses a 576-byte GT encoding produced by EncodeGT.
func DecodeGT(b []byte) (Fp12, error) {
	if len(b) != 576 {
		return Fp12{}, ErrDecodeLength
	}
	var coeffs [12]Fq
	for i := range coeffs {
		v, ok := FqSetBytesBE(b[i*48 : (i+1)*48])
		if !ok {
			return Fp12{}, ErrDecodeFlags
		}
		coeffs[i] = v
	}
	return Fp12{
		c0: Fp6{
			c0: NewFp2(coeffs[1], coeffs[0]),
			c1: NewFp2(coeffs[3], coeffs[2]),
			c2: NewFp2(coeffs[5], coeffs[4]),
		},
		c1: Fp6{
			c0: NewFp2(coeffs[7], coeffs[6]),
			c1: NewFp2(coeffs[9], coeffs[8]),
			c2: NewFp2(coeffs[11], coeffs[10]),
		},
	}, nil
}
