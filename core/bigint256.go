package core

import "math/bits"

// Big256 is an unsigned 256-bit integer, four 64-bit words, little-endian.
type Big256 struct {
	Words [4]uint64
}

// Big512 is the double-width result of a 256x256 multiply or square.
type Big512 struct {
	Words [8]uint64
}

// Zero256 is the additive identity.
var Zero256 = Big256{}

// One256 is the integer 1 (not the Montgomery representation of 1).
var One256 = Big256{Words: [4]uint64{1, 0, 0, 0}}

// SetBytesBE loads a big-endian byte encoding (at most 32 bytes) into dst.
func (dst *Big256) SetBytesBE(b []byte) {
	dst.Words = [4]uint64{}
	for i := 0; i < len(b) && i < 32; i++ {
		byteIndex := len(b) - 1 - i
		word := i / 8
		shift := uint((i % 8) * 8)
		dst.Words[word] |= uint64(b[byteIndex]) << shift
	}
}

// BytesBE returns the big-endian, 32-byte encoding of x.
func (x *Big256) BytesBE() [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		word := i / 8
		shift := uint((i % 8) * 8)
		out[31-i] = byte(x.Words[word] >> shift)
	}
	return out
}

// IsZero reports whether x is exactly zero.
func (x *Big256) IsZero() bool {
	return (x.Words[0] | x.Words[1] | x.Words[2] | x.Words[3]) == 0
}

// Equal folds the whole limb vector, no early exit.
func (x *Big256) Equal(y *Big256) bool {
	var diff uint64
	for i := 0; i < 4; i++ {
		diff |= x.Words[i] ^ y.Words[i]
	}
	return diff == 0
}

// Cmp returns -1, 0 or 1 as x is less than, equal to, or greater than y.
func (x *Big256) Cmp(y *Big256) int {
	for i := 3; i >= 0; i-- {
		if x.Words[i] < y.Words[i] {
			return -1
		}
		if x.Words[i] > y.Words[i] {
			return 1
		}
	}
	return 0
}

// Add sets dst = a + b and returns the carry out of the top limb.
func (dst *Big256) Add(a, b *Big256) uint64 {
	var carry uint64
	var r [4]uint64
	for i := 0; i < 4; i++ {
		r[i], carry = bits.Add64(a.Words[i], b.Words[i], carry)
	}
	dst.Words = r
	return carry
}

// Sub sets dst = a - b and returns the borrow out of the top limb.
func (dst *Big256) Sub(a, b *Big256) uint64 {
	var borrow uint64
	var r [4]uint64
	for i := 0; i < 4; i++ {
		r[i], borrow = bits.Sub64(a.Words[i], b.Words[i], borrow)
	}
	dst.Words = r
	return borrow
}

// ShiftRight1 sets dst = x >> 1.
func (dst *Big256) ShiftRight1(x *Big256) {
	var r [4]uint64
	var carry uint64
	for i := 3; i >= 0; i-- {
		r[i] = (x.Words[i] >> 1) | (carry << 63)
		carry = x.Words[i] & 1
	}
	dst.Words = r
}

// ShiftLeft1 sets dst = x << 1 and returns the bit shifted out of the top.
func (dst *Big256) ShiftLeft1(x *Big256) uint64 {
	var r [4]uint64
	for i := 0; i < 4; i++ {
		carryIn := uint64(0)
		if i > 0 {
			carryIn = x.Words[i-1] >> 63
		}
		r[i] = (x.Words[i] << 1) | carryIn
	}
	carryOut := x.Words[3] >> 63
	dst.Words = r
	return carryOut
}

// Bit returns bit i (0 = least significant) of x.
func (x *Big256) Bit(i int) uint64 {
	if i < 0 || i >= 256 {
		return 0
	}
	return (x.Words[i/64] >> uint(i%64)) & 1
}

// BitLen returns the index of the highest set bit plus one, or 0 if x is zero.
func (x *Big256) BitLen() int {
	for i := 3; i >= 0; i-- {
		if x.Words[i] != 0 {
			return i*64 + bits.Len64(x.Words[i])
		}
	}
	return 0
}

// Mul computes the full 512-bit schoolbook product dst = a * b.
func (dst *Big512) Mul(a, b *Big256) {
	var r [8]uint64
	for i := 0; i < 4; i++ {
		if a.Words[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a.Words[i], b.Words[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+4] += carry
	}
	dst.Words = r
}

// Square computes dst = a * a via the below-diagonal doubling trick.
func (dst *Big512) Square(a *Big256) {
	var r [8]uint64
	for i := 0; i < 4; i++ {
		if a.Words[i] == 0 {
			continue
		}
		var carry uint64
		for j := i + 1; j < 4; j++ {
			hi, lo := bits.Mul64(a.Words[i], a.Words[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+4] += carry
	}
	var carry uint64
	for i := 0; i < 8; i++ {
		v := r[i]
		r[i] = (v << 1) | carry
		carry = v >> 63
	}
	var addCarry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(a.Words[i], a.Words[i])
		var c uint64
		lo, c = bits.Add64(lo, r[2*i], addCarry)
		r[2*i] = lo
		hi, c = bits.Add64(hi, 0, c)
		hi2, c2 := bits.Add64(hi, r[2*i+1], 0)
		r[2*i+1] = hi2
		addCarry = c + c2
	}
	dst.Words = r
}

// Low returns the low 256 bits of a 512-bit value.
func (x *Big512) Low() Big256 {
	var r Big256
	copy(r.Words[:], x.Words[:4])
	return r
}

// DivModWord64 divides x by the single-word divisor d, returning the
// quotient and remainder. It processes words most-significant first,
// feeding the running remainder (always < d, so never overflowing
// bits.Div64's hi argument) in alongside the next word down.
func DivModWord64(x *Big256, d uint64) (Big256, uint64) {
	var q Big256
	var rem uint64
	for i := 3; i >= 0; i-- {
		qw, r := bits.Div64(rem, x.Words[i], d)
		q.Words[i] = qw
		rem = r
	}
	return q, rem
}

// DivBig512By256 computes floor(x / d) by schoolbook binary long
// division, one bit of x at a time. It assumes (as every caller here
// does: the GLV/GLS scalar decompositions divide a product of a
// lattice coefficient and a sub-r scalar by the curve order) that the
// quotient itself fits in 256 bits, so bits of x at or above position
// 256 only affect the running remainder and are never written out.
func DivBig512By256(x *Big512, d *Big256) Big256 {
	var q, rem Big256
	for i := 511; i >= 0; i-- {
		bit := (x.Words[i/64] >> uint(i%64)) & 1
		var carry = bit
		for w := 0; w < 4; w++ {
			next := rem.Words[w] >> 63
			rem.Words[w] = (rem.Words[w] << 1) | carry
			carry = next
		}
		if rem.Cmp(d) >= 0 {
			rem.Sub(&rem, d)
			if i < 256 {
				q.Words[i/64] |= uint64(1) << uint(i%64)
			}
		}
	}
	return q
}
