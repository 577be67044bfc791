package bls12381

import "github.com/sbpairing/pairing/core"

// fqModulus is p, the 381-bit BLS12-381 base field modulus.
var fqModulus = core.Big384{Words: [6]uint64{
	0xb9feffffffffaaab, 0x1eabfffeb153ffff, 0x6730d2a0f6b0f624,
	0x64774b84f38512bf, 0x4b1ba7b6434bacd7, 0x1a0111ea397fe69a,
}}

// fqR is R = 2^384 mod p, the Montgomery representation of the
// integer 1.
var fqR = core.Big384{Words: [6]uint64{
	0x760900000002fffd, 0xebf4000bc40c0002, 0x5f48985753c758ba,
	0x77ce585370525745, 0x5c071a97a256ec6d, 0x15f65ec3fa80e493,
}}

// fqR2 is R^2 mod p, used to carry an integer into Montgomery form.
var fqR2 = core.Big384{Words: [6]uint64{
	0xf4df1f341c341746, 0x0a76e6a609d104f1, 0x8de5476c4c95b6d5,
	0x67eb88a9939d83c0, 0x9a793e85b519952d, 0x11988fe592cae3aa,
}}

// fqInv is the low word of -p^-1 mod 2^64.
const fqInv uint64 = 0x89f3fffcfffcfffd

// frModulus is r, the 255-bit order of the G1/G2/GT groups.
var frModulus = core.Big256{Words: [4]uint64{
	0xffffffff00000001, 0x53bda402fffe5bfe, 0x3339d80809a1d805, 0x73eda753299d7d48,
}}

// frR is R = 2^256 mod r.
var frR = core.Big256{Words: [4]uint64{
	0x00000001fffffffe, 0x5884b7fa00034802, 0x998c4fefecbc4ff5, 0x1824b159acc5056f,
}}

// frR2 is R^2 mod r.
var frR2 = core.Big256{Words: [4]uint64{
	0xc999e990f3f29c6d, 0x2b6cedcb87925c23, 0x05d314967254398f, 0x0748d9d99f59ff11,
}}

// frInv is the low word of -r^-1 mod 2^64.
const frInv uint64 = 0xfffffffeffffffff

// The raw (non-Montgomery) constants below are carried into Montgomery
// form once, at package initialization, by the same multiply-by-R2
// path used for every other field element; see fq.go / fr.go.

var rawFqOne = core.One384

// rawB is the curve coefficient b = 4 shared by both G1 (over Fq) and,
// scaled by the sextic twist, G2 (over Fq2).
var rawB = core.Big384{Words: [6]uint64{4, 0, 0, 0, 0, 0}}

var rawG1X = bytesBE384("17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb")
var rawG1Y = bytesBE384("08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1")

var rawG2Xc0 = bytesBE384("024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8")
var rawG2Xc1 = bytesBE384("13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e")
var rawG2Yc0 = bytesBE384("0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801")
var rawG2Yc1 = bytesBE384("0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be")

// rawBeta is a primitive cube root of unity in Fq, used by the G1
// endomorphism: (x, y) -> (beta*x, y) acts as multiplication by
// rawLambda on the r-torsion subgroup.
var rawBeta = bytesBE384("5f19672fdf76ce51ba69c6076a0f77eaddb3a93be6f89688de17d813620a00022e01fffffffefffe")

// rawLambda is the corresponding primitive cube root of unity in Fr:
// phi(P) == [rawLambda]P for every P in the r-torsion subgroup.
var rawLambda = bytesBE256("73eda753299d7d483339d80809a1d804a7780001fffcb7fcfffffffe00000001")

// rawGlvV1_2 and rawGlvV2_1 are the short lattice basis coefficients
// GLV decomposition uses to split a scalar k into two half-width
// pieces: v1 = <1, -v1_2> and v2 = <v2_1, 1> both satisfy
// f(v) = 0 for f(x, y) = x + rawLambda*y (mod r), and
// 1 + v1_2*v2_1 == r exactly, so dividing by r below stands in for
// dividing by the (unneeded) lattice determinant.
var rawGlvV1_2 = bytesBE256("ac45a4010001a40200000000ffffffff")
var rawGlvV2_1 = bytesBE256("ac45a4010001a4020000000100000000")

// g1CofactorBE is the big-endian encoding of the G1 cofactor
// h1 = (x-1)^2 / 3.
var g1CofactorBE = hexBytes("396c8c005555e1568c00aaab0000aaab")

// g2CofactorBE is the big-endian encoding of the G2 cofactor.
var g2CofactorBE = hexBytes("5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5")

// blsXAbs is |x| for the BLS12-381 parameter x = -0xd201000000010000.
// x has 64 bits of content and exactly 6 bits set.
var blsXAbs = uint64(0xd201000000010000)

// blsXIsNegative is true for BLS12-381 (the "M-twist, negative x" case).
const blsXIsNegative = true

// bls_x_highest_set_bit: |x| has 64 bits of content (bit 63 down to
// bit 0 inclusive span its nonzero range).
const blsXHighestSetBit = 63

// Frobenius coefficients for Fp6 and Fp12, each indexed by the power
// of the Frobenius endomorphism applied (mod 6 / mod 12 in general;
// this package only ever calls Frobenius at powers 0-3, so only those
// entries are carried). Index 0 is always the identity (1 in Fq2) and
// is constructed directly rather than stored.
//
// rawFq6FrobC1_1 doubles as the coefficient fq6 uses at c1 for power
// 1; rawFq6FrobC1_2 (the power-2 entry) is exactly rawBeta, the same
// primitive cube root of unity the G1 endomorphism multiplies by, so
// it is reused rather than restated.
var rawFq6FrobC1_1 = bytesBE384("1a0111ea397fe699ec02408663d4de85aa0d857d89759ad4897d29650fb85f9b409427eb4f49fffd8bfd00000000aaac")

var rawFq6FrobC2_1 = bytesBE384("1a0111ea397fe699ec02408663d4de85aa0d857d89759ad4897d29650fb85f9b409427eb4f49fffd8bfd00000000aaad")
var rawFq6FrobC2_2 = bytesBE384("1a0111ea397fe699ec02408663d4de85aa0d857d89759ad4897d29650fb85f9b409427eb4f49fffd8bfd00000000aaac")
var rawFq6FrobC2_3 = bytesBE384("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaaa")

var rawFq12FrobC1_1c0 = bytesBE384("1904d3bf02bb0667c231beb4202c0d1f0fd603fd3cbd5f4f7b2443d784bab9c4f67ea53d63e7813d8d0775ed92235fb8")
var rawFq12FrobC1_1c1 = bytesBE384("00fc3e2b36c4e03288e9e902231f9fb854a14787b6c7b36fec0c8ec971f63c5f282d5ac14d6c7ec22cf78a126ddc4af3")
var rawFq12FrobC1_2c0 = bytesBE384("00000000000000005f19672fdf76ce51ba69c6076a0f77eaddb3a93be6f89688de17d813620a00022e01fffffffeffff")
var rawFq12FrobC1_3c0 = bytesBE384("135203e60180a68ee2e9c448d77a2cd91c3dedd930b1cf60ef396489f61eb45e304466cf3e67fa0af1ee7b04121bdea2")
var rawFq12FrobC1_3c1 = bytesBE384("06af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09")

// The G2 Frobenius endomorphism psi (psi(P) == [x]P on G2's r-torsion
// subgroup, for the signed BLS parameter x) multiplies its twisted
// coordinate by the sextic-twist coefficient xi^((p-1)/6) — the same
// Fp2 value as rawFq12FrobC1_1c0/c1 above, since both come from
// applying Frobenius once to the twisting element. g2.go reuses those
// two constants directly rather than restating them.

func hexBytes(s string) []byte {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi := hexNibble(s[2*i])
		lo := hexNibble(s[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func bytesBE384(hex string) core.Big384 {
	var b core.Big384
	b.SetBytesBE(hexBytes(hex))
	return b
}

func bytesBE256(hex string) core.Big256 {
	var b core.Big256
	b.SetBytesBE(hexBytes(hex))
	return b
}
