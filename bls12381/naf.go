package bls12381

import "github.com/sbpairing/pairing/core"

// nafWindow is the w in windowed non-adjacent form: digits are odd
// and bounded by 2^(w-1) in absolute value, spaced so that at most
// one in every w digits is nonzero.
const nafWindow = 4

// wnaf256 computes the width-4 NAF of a 256-bit scalar as a
// little-endian slice of signed digits, each either 0 or odd with
// |digit| < 2^(nafWindow-1). The slice length is at most BitLen(k)+1.
func wnaf256(k *core.Big256) []int32 {
	if k.IsZero() {
		return nil
	}
	c := *k
	var digits []int32
	width := uint64(1) << nafWindow
	half := int64(width / 2)
	for !c.IsZero() {
		if c.Words[0]&1 == 1 {
			mod := int64(c.Words[0] & (width - 1))
			if mod >= half {
				mod -= int64(width)
			}
			digits = append(digits, int32(mod))
			if mod >= 0 {
				subWord(&c, uint64(mod))
			} else {
				addWord(&c, uint64(-mod))
			}
		} else {
			digits = append(digits, 0)
		}
		c.ShiftRight1(&c)
	}
	return digits
}

func subWord(x *core.Big256, w uint64) {
	var wb core.Big256
	wb.Words[0] = w
	x.Sub(x, &wb)
}

func addWord(x *core.Big256, w uint64) {
	var wb core.Big256
	wb.Words[0] = w
	x.Add(x, &wb)
}
