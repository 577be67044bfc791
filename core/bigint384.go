// Package core implements the fixed-width integer arithmetic that the
// BLS12-381 Montgomery field code in package bls12381 is built from.
// Nothing in this package allocates on the heap; every operand is a
// value type passed by pointer. Arithmetic and shift operations write
// into a caller-supplied destination, while BytesBE, Low,
// DivModWord64 and DivBig512By256 return their results by value.
package core

import "math/bits"

// Big384 is an unsigned 384-bit integer stored as six 64-bit words in
// little-endian order (Words[0] is the least significant word). A
// Big384 is never implicitly normalized: it may hold any value in
// [0, 2^384), not just values below a particular modulus.
type Big384 struct {
	Words [6]uint64
}

// Big768 is the 768-bit double-width result of a 384x384 schoolbook
// multiply or square, before Montgomery reduction folds it back down
// to 384 bits.
type Big768 struct {
	Words [12]uint64
}

// Zero384 is the additive identity.
var Zero384 = Big384{}

// One384 is the multiplicative identity of the underlying integers
// (not to be confused with the Montgomery representation of 1, which
// is R mod p and lives alongside each modulus's constants).
var One384 = Big384{Words: [6]uint64{1, 0, 0, 0, 0, 0}}

// SetBytesBE loads a big-endian byte encoding (at most 48 bytes) into dst.
func (dst *Big384) SetBytesBE(b []byte) {
	dst.Words = [6]uint64{}
	for i := 0; i < len(b) && i < 48; i++ {
		byteIndex := len(b) - 1 - i
		word := i / 8
		shift := uint((i % 8) * 8)
		dst.Words[word] |= uint64(b[byteIndex]) << shift
	}
}

// BytesBE returns the big-endian, 48-byte encoding of x.
func (x *Big384) BytesBE() [48]byte {
	var out [48]byte
	for i := 0; i < 48; i++ {
		word := i / 8
		shift := uint((i % 8) * 8)
		out[47-i] = byte(x.Words[word] >> shift)
	}
	return out
}

// IsZero reports whether x is exactly zero.
func (x *Big384) IsZero() bool {
	return (x.Words[0] | x.Words[1] | x.Words[2] | x.Words[3] | x.Words[4] | x.Words[5]) == 0
}

// Equal reports whether x == y, folding the whole limb vector so the
// comparison has no data-dependent early exit.
func (x *Big384) Equal(y *Big384) bool {
	var diff uint64
	for i := 0; i < 6; i++ {
		diff |= x.Words[i] ^ y.Words[i]
	}
	return diff == 0
}

// Cmp returns -1, 0 or 1 as x is less than, equal to, or greater than y.
func (x *Big384) Cmp(y *Big384) int {
	for i := 5; i >= 0; i-- {
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
// dst may alias a or b.
func (dst *Big384) Add(a, b *Big384) uint64 {
	var carry uint64
	var r [6]uint64
	for i := 0; i < 6; i++ {
		r[i], carry = bits.Add64(a.Words[i], b.Words[i], carry)
	}
	dst.Words = r
	return carry
}

// Sub sets dst = a - b and returns the borrow out of the top limb.
// dst may alias a or b.
func (dst *Big384) Sub(a, b *Big384) uint64 {
	var borrow uint64
	var r [6]uint64
	for i := 0; i < 6; i++ {
		r[i], borrow = bits.Sub64(a.Words[i], b.Words[i], borrow)
	}
	dst.Words = r
	return borrow
}

// ShiftRight1 sets dst = x >> 1.
func (dst *Big384) ShiftRight1(x *Big384) {
	var r [6]uint64
	var carry uint64
	for i := 5; i >= 0; i-- {
		r[i] = (x.Words[i] >> 1) | (carry << 63)
		carry = x.Words[i] & 1
	}
	dst.Words = r
}

// ShiftLeft1 sets dst = x << 1 and returns the bit shifted out of the top.
func (dst *Big384) ShiftLeft1(x *Big384) uint64 {
	var r [6]uint64
	var carryOut uint64
	for i := 0; i < 6; i++ {
		carryIn := uint64(0)
		if i > 0 {
			carryIn = x.Words[i-1] >> 63
		}
		r[i] = (x.Words[i] << 1) | carryIn
	}
	carryOut = x.Words[5] >> 63
	dst.Words = r
	return carryOut
}

// Bit returns bit i (0 = least significant) of x.
func (x *Big384) Bit(i int) uint64 {
	if i < 0 || i >= 384 {
		return 0
	}
	return (x.Words[i/64] >> uint(i%64)) & 1
}

// BitLen returns the index of the highest set bit plus one, or 0 if x is zero.
func (x *Big384) BitLen() int {
	for i := 5; i >= 0; i-- {
		if x.Words[i] != 0 {
			return i*64 + bits.Len64(x.Words[i])
		}
	}
	return 0
}

// Mul computes the full 768-bit schoolbook product dst = a * b.
func (dst *Big768) Mul(a, b *Big384) {
	var r [12]uint64
	for i := 0; i < 6; i++ {
		if a.Words[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < 6; j++ {
			hi, lo := bits.Mul64(a.Words[i], b.Words[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+6] += carry
	}
	dst.Words = r
}

// Square computes dst = a * a using the symmetric below-diagonal
// optimization: accumulate the off-diagonal cross terms once, double
// them, then add the on-diagonal squares.
func (dst *Big768) Square(a *Big384) {
	var r [12]uint64
	// Below-diagonal cross terms, each counted once.
	for i := 0; i < 6; i++ {
		if a.Words[i] == 0 {
			continue
		}
		var carry uint64
		for j := i + 1; j < 6; j++ {
			hi, lo := bits.Mul64(a.Words[i], a.Words[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, r[i+j], 0)
			hi += c
			r[i+j] = lo
			carry = hi
		}
		r[i+6] += carry
	}
	// Double the cross terms.
	var carry uint64
	for i := 0; i < 12; i++ {
		v := r[i]
		r[i] = (v << 1) | carry
		carry = v >> 63
	}
	// Add the diagonal squares.
	var addCarry uint64
	for i := 0; i < 6; i++ {
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

// Low returns the low 384 bits of a 768-bit value.
func (x *Big768) Low() Big384 {
	var r Big384
	copy(r.Words[:], x.Words[:6])
	return r
}
