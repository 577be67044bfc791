// Package wkdibe implements the wildcarded key-delegable identity-based
// encryption and signature scheme: attributes occupy fixed slots in a
// public vector of G1 bases, keys for a partial attribute assignment
// carry "free slot" hints that let qualifykey later bind the remaining
// slots without access to the master secret, and a non-delegable key
// variant fixes the key randomizer at one for a cheaper key whose free
// slots are the bare h[i], extended through NonDelegableQualifyKey and
// AdjustNonDelegable rather than QualifyKey.
package wkdibe

import (
	"io"

	"github.com/sbpairing/pairing/bls12381"
)

// Attribute is one slot assignment in an AttributeList: slot Index
// bound to scalar Value, or (if Omit) present in the list for
// encryption/precompute purposes but skipped during key derivation so
// the slot is left as a free slot instead.
type Attribute struct {
	Index int
	Value bls12381.Fr
	Omit  bool
}

// AttributeList is a sparse, ascending-by-Index list of attributes.
// OmitFreeSlotsUnlessPresent suppresses free-slot generation for every
// slot not named in Attrs, producing a key bound only to the named
// slots with no room for later qualification of the unnamed ones.
type AttributeList struct {
	Attrs                      []Attribute
	OmitFreeSlotsUnlessPresent bool
}

// Params are the public parameters: g, g1=g^alpha in G2, g2, g3 in G1,
// a per-slot base vector H, an optional signature base HSig, and the
// cached pairing value e(g2, g1) that encrypt/verify check against.
type Params struct {
	Signatures bool
	L          int
	G          bls12381.G2Jacobian
	G1         bls12381.G2Jacobian
	G2         bls12381.G1Jacobian
	G3         bls12381.G1Jacobian
	H          []bls12381.G1Jacobian
	HSig       bls12381.G1Jacobian
	Pairing    bls12381.Fp12
}

// MasterKey is g2^alpha, kept by the authority that runs Setup.
type MasterKey struct {
	G2Alpha bls12381.G1Jacobian
}

// FreeSlot is one slot left unbound by a key: h[Index]^t for the
// randomizer t used to derive the key it belongs to.
type FreeSlot struct {
	Index int
	B     bls12381.G1Jacobian
}

// SecretKey is a (possibly partial) identity key: A0 carries the
// blinded master secret plus the bound attributes, A1 is g^t, BSig is
// the signature-slot analogue of A0's blinding, and FreeSlots holds
// the unbound per-slot hints a later QualifyKey call can extend.
type SecretKey struct {
	A0         bls12381.G1Jacobian
	A1         bls12381.G2Jacobian
	BSig       bls12381.G1Jacobian
	Signatures bool
	FreeSlots  []FreeSlot
}

// Precomputed caches g3 * prod(h[i]^id_i) for a fixed attribute list,
// so repeated encryptions or signatures under the same attributes skip
// recomputing the product.
type Precomputed struct {
	ProdExp bls12381.G1Jacobian
}

// Ciphertext is (blind, b, c): the GT-blinded message, g^s, and the
// per-attribute product raised to the same s.
type Ciphertext struct {
	Blind bls12381.Fp12
	B     bls12381.G2Jacobian
	C     bls12381.G1Jacobian
}

// Signature is (a0, a1), the message scalar folded into the
// signature-slot exponent of an otherwise ordinary qualified key.
type Signature struct {
	A0 bls12381.G1Jacobian
	A1 bls12381.G2Jacobian
}

// Setup picks a random master secret alpha, generators g (G2), g2, g3
// (G1), an l-element base vector H, and — if signatures is set — a
// signature base HSig, publishing Params and the MasterKey g2^alpha.
func Setup(l int, signatures bool, rnd io.Reader) (Params, MasterKey, error) {
	alpha, err := bls12381.FrRandom(rnd)
	if err != nil {
		return Params{}, MasterKey{}, err
	}
	g, err := bls12381.G2Random(rnd)
	if err != nil {
		return Params{}, MasterKey{}, err
	}
	g2, err := bls12381.G1Random(rnd)
	if err != nil {
		return Params{}, MasterKey{}, err
	}
	g3, err := bls12381.G1Random(rnd)
	if err != nil {
		return Params{}, MasterKey{}, err
	}
	h := make([]bls12381.G1Jacobian, l)
	for i := range h {
		h[i], err = bls12381.G1Random(rnd)
		if err != nil {
			return Params{}, MasterKey{}, err
		}
	}
	hsig := bls12381.G1Identity()
	if signatures {
		hsig, err = bls12381.G1Random(rnd)
		if err != nil {
			return Params{}, MasterKey{}, err
		}
	}

	g1 := g.ScalarMul(alpha)
	msk := MasterKey{G2Alpha: g2.ScalarMul(alpha)}
	pairing := bls12381.Pairing(g2.ToAffine(), g1.ToAffine())

	params := Params{
		Signatures: signatures,
		L:          l,
		G:          g,
		G1:         g1,
		G2:         g2,
		G3:         g3,
		H:          h,
		HSig:       hsig,
		Pairing:    pairing,
	}
	return params, msk, nil
}

// KeyGen derives a delegable key for attrs: a fresh randomizer t binds
// a0 = msk * (g3 * prod h[i]^id_i)^t, a1 = g^t, and every slot not
// named in attrs (unless suppressed) becomes a free slot h[i]^t.
func KeyGen(params Params, msk MasterKey, attrs AttributeList, rnd io.Reader) (SecretKey, error) {
	t, err := bls12381.FrRandom(rnd)
	if err != nil {
		return SecretKey{}, err
	}
	a0 := params.G3
	var freeSlots []FreeSlot
	k := 0
	for i := 0; i < params.L; i++ {
		if k < len(attrs.Attrs) && attrs.Attrs[k].Index == i {
			if !attrs.Attrs[k].Omit {
				a0 = a0.Add(params.H[i].ScalarMul(attrs.Attrs[k].Value))
			}
			k++
		} else if !attrs.OmitFreeSlotsUnlessPresent {
			freeSlots = append(freeSlots, FreeSlot{Index: i, B: params.H[i].ScalarMul(t)})
		}
	}
	a0 = a0.ScalarMul(t)
	a0 = a0.Add(msk.G2Alpha)
	a1 := params.G.ScalarMul(t)

	var bsig bls12381.G1Jacobian
	if params.Signatures {
		bsig = params.HSig.ScalarMul(t)
	}
	return SecretKey{A0: a0, A1: a1, BSig: bsig, Signatures: params.Signatures, FreeSlots: freeSlots}, nil
}

// QualifyKey extends sk (issued over some attribute set A) to the
// superset attrs by re-randomizing with a fresh t', absorbing the
// newly-bound attributes' free-slot hints into a0 and re-blinding the
// remaining free slots.
func QualifyKey(params Params, sk SecretKey, attrs AttributeList, rnd io.Reader) (SecretKey, error) {
	t, err := bls12381.FrRandom(rnd)
	if err != nil {
		return SecretKey{}, err
	}
	product := params.G3
	a0 := sk.A0
	var freeSlots []FreeSlot
	k, x := 0, 0
	for i := 0; i < params.L; i++ {
		if k < len(attrs.Attrs) && attrs.Attrs[k].Index == i {
			if !attrs.Attrs[k].Omit {
				product = product.Add(params.H[i].ScalarMul(attrs.Attrs[k].Value))
				if x < len(sk.FreeSlots) && sk.FreeSlots[x].Index == i {
					a0 = a0.Add(sk.FreeSlots[x].B.ScalarMul(attrs.Attrs[k].Value))
					x++
				}
			}
			k++
		} else if x < len(sk.FreeSlots) && sk.FreeSlots[x].Index == i {
			if !attrs.OmitFreeSlotsUnlessPresent {
				b := params.H[i].ScalarMul(t).Add(sk.FreeSlots[x].B)
				freeSlots = append(freeSlots, FreeSlot{Index: i, B: b})
			}
			x++
		}
	}
	product = product.ScalarMul(t)
	a0 = a0.Add(product)
	a1 := params.G.ScalarMul(t).Add(sk.A1)

	var bsig bls12381.G1Jacobian
	if sk.Signatures {
		bsig = params.HSig.ScalarMul(t).Add(sk.BSig)
	}
	return SecretKey{A0: a0, A1: a1, BSig: bsig, Signatures: sk.Signatures, FreeSlots: freeSlots}, nil
}

// NonDelegableKeyGen derives a key with the randomizer fixed at the
// multiplicative identity: shorter to compute and to store (a1 is
// simply g, every free slot is simply h[i]). NonDelegableQualifyKey and
// AdjustNonDelegable change its attribute set without drawing a fresh
// randomizer.
func NonDelegableKeyGen(params Params, msk MasterKey, attrs AttributeList) SecretKey {
	a0 := params.G3
	var freeSlots []FreeSlot
	k := 0
	for i := 0; i < params.L; i++ {
		if k < len(attrs.Attrs) && attrs.Attrs[k].Index == i {
			if !attrs.Attrs[k].Omit {
				a0 = a0.Add(params.H[i].ScalarMul(attrs.Attrs[k].Value))
			} else if !attrs.OmitFreeSlotsUnlessPresent {
				freeSlots = append(freeSlots, FreeSlot{Index: i, B: params.H[i]})
			}
			k++
		} else if !attrs.OmitFreeSlotsUnlessPresent {
			freeSlots = append(freeSlots, FreeSlot{Index: i, B: params.H[i]})
		}
	}
	a0 = a0.Add(msk.G2Alpha)

	var bsig bls12381.G1Jacobian
	if params.Signatures {
		bsig = params.HSig
	}
	return SecretKey{A0: a0, A1: params.G, BSig: bsig, Signatures: params.Signatures, FreeSlots: freeSlots}
}

// NonDelegableQualifyKey narrows a non-delegable key's attribute set
// the same way QualifyKey narrows a delegable one, but without a fresh
// randomizer — the result is still non-delegable.
func NonDelegableQualifyKey(params Params, sk SecretKey, attrs AttributeList) SecretKey {
	a0 := sk.A0
	var freeSlots []FreeSlot
	k, x := 0, 0
	for i := 0; x < len(sk.FreeSlots) && i < params.L; i++ {
		if k < len(attrs.Attrs) && attrs.Attrs[k].Index == i {
			if sk.FreeSlots[x].Index == i && !attrs.Attrs[k].Omit {
				a0 = a0.Add(sk.FreeSlots[x].B.ScalarMul(attrs.Attrs[k].Value))
				x++
			}
			k++
		} else if sk.FreeSlots[x].Index == i {
			if !attrs.OmitFreeSlotsUnlessPresent {
				freeSlots = append(freeSlots, sk.FreeSlots[x])
			}
			x++
		}
	}
	return SecretKey{A0: a0, A1: sk.A1, BSig: sk.BSig, Signatures: sk.Signatures, FreeSlots: freeSlots}
}

// AdjustNonDelegable transforms a non-delegable key issued over `from`
// into one over `to` by folding each free slot's difference in
// exponent directly into a0, without access to the master secret.
func AdjustNonDelegable(parent SecretKey, from, to AttributeList) SecretKey {
	a0 := parent.A0
	var freeSlots []FreeSlot
	j, k := 0, 0
	for _, fs := range parent.FreeSlots {
		idx := fs.Index
		for j < len(from.Attrs) && from.Attrs[j].Index < idx && !from.Attrs[j].Omit {
			j++
		}
		for k < len(to.Attrs) && to.Attrs[k].Index < idx && !to.Attrs[k].Omit {
			k++
		}
		subFrom := j < len(from.Attrs) && from.Attrs[j].Index == idx
		addTo := k < len(to.Attrs) && to.Attrs[k].Index == idx

		if j < len(from.Attrs) || k < len(to.Attrs) {
			switch {
			case subFrom && addTo:
				if !from.Attrs[j].Value.Equal(to.Attrs[k].Value) {
					diff := to.Attrs[k].Value.Sub(from.Attrs[j].Value)
					a0 = a0.Add(fs.B.ScalarMul(diff))
				}
			case subFrom:
				a0 = a0.Add(fs.B.ScalarMul(from.Attrs[j].Value.Neg()))
			case addTo:
				a0 = a0.Add(fs.B.ScalarMul(to.Attrs[k].Value))
			}
		}
		if !addTo {
			freeSlots = append(freeSlots, fs)
		}
	}
	return SecretKey{A0: a0, A1: parent.A1, BSig: parent.BSig, Signatures: parent.Signatures, FreeSlots: freeSlots}
}

// PrecomputeForAttrs computes g3 * prod(h[i]^id_i) over attrs, for
// reuse across repeated Encrypt/Sign calls under the same attributes.
func PrecomputeForAttrs(params Params, attrs AttributeList) Precomputed {
	p := params.G3
	for _, a := range attrs.Attrs {
		p = p.Add(params.H[a.Index].ScalarMul(a.Value))
	}
	return Precomputed{ProdExp: p}
}

// AdjustPrecomputed transforms a Precomputed value from `from` to `to`
// by adding each differing slot's exponent delta, assuming both lists
// are sorted ascending by Index.
func AdjustPrecomputed(params Params, pre Precomputed, from, to AttributeList) Precomputed {
	p := pre.ProdExp
	i, j := 0, 0
	for i < len(from.Attrs) && j < len(to.Attrs) {
		fa, ta := from.Attrs[i], to.Attrs[j]
		switch {
		case fa.Index == ta.Index:
			if !fa.Value.Equal(ta.Value) {
				diff := ta.Value.Sub(fa.Value)
				p = p.Add(params.H[ta.Index].ScalarMul(diff))
			}
			i++
			j++
		case fa.Index < ta.Index:
			p = p.Add(params.H[fa.Index].ScalarMul(fa.Value.Neg()))
			i++
		default:
			p = p.Add(params.H[ta.Index].ScalarMul(ta.Value))
			j++
		}
	}
	for ; i < len(from.Attrs); i++ {
		p = p.Add(params.H[from.Attrs[i].Index].ScalarMul(from.Attrs[i].Value.Neg()))
	}
	for ; j < len(to.Attrs); j++ {
		p = p.Add(params.H[to.Attrs[j].Index].ScalarMul(to.Attrs[j].Value))
	}
	return Precomputed{ProdExp: p}
}

// ResampleKey re-blinds sk with a fresh randomizer t drawn against a
// Precomputed attribute product, optionally retaining (re-blinded)
// free-slot hints so the result can still be qualified further.
func ResampleKey(params Params, pre Precomputed, sk SecretKey, supportFurtherQualification bool, rnd io.Reader) (SecretKey, error) {
	t, err := bls12381.FrRandom(rnd)
	if err != nil {
		return SecretKey{}, err
	}
	a0 := sk.A0.Add(pre.ProdExp.ScalarMul(t))
	a1 := sk.A1.Add(params.G.ScalarMul(t))

	var bsig bls12381.G1Jacobian
	if sk.Signatures {
		bsig = sk.BSig.Add(params.HSig.ScalarMul(t))
	}

	var freeSlots []FreeSlot
	if supportFurtherQualification {
		freeSlots = make([]FreeSlot, len(sk.FreeSlots))
		for i, fs := range sk.FreeSlots {
			freeSlots[i] = FreeSlot{Index: fs.Index, B: fs.B.Add(params.H[fs.Index].ScalarMul(t))}
		}
	}
	return SecretKey{A0: a0, A1: a1, BSig: bsig, Signatures: sk.Signatures, FreeSlots: freeSlots}, nil
}

// Encrypt blinds message (a GT element) under attrs, computing its own
// Precomputed attribute product.
func Encrypt(params Params, attrs AttributeList, message bls12381.Fp12, rnd io.Reader) (Ciphertext, error) {
	pre := PrecomputeForAttrs(params, attrs)
	return EncryptPrecomputed(params, pre, message, rnd)
}

// EncryptPrecomputed is Encrypt against an attribute product computed
// ahead of time.
func EncryptPrecomputed(params Params, pre Precomputed, message bls12381.Fp12, rnd io.Reader) (Ciphertext, error) {
	s, err := bls12381.FrRandom(rnd)
	if err != nil {
		return Ciphertext{}, err
	}
	sBytes := s.BytesBE()
	blind := params.Pairing.Exp(sBytes[:]).Mul(message)
	b := params.G.ScalarMul(s)
	c := pre.ProdExp.ScalarMul(s)
	return Ciphertext{Blind: blind, B: b, C: c}, nil
}

// Decrypt recovers the message from ct using a key whose attribute set
// is consistent with the attributes ct was encrypted under.
func Decrypt(sk SecretKey, ct Ciphertext) bls12381.Fp12 {
	num := bls12381.Pairing(ct.C.ToAffine(), sk.A1.ToAffine())
	den := bls12381.Pairing(sk.A0.ToAffine(), ct.B.ToAffine())
	return ct.Blind.Mul(num.Mul(den.Inv()))
}

// DecryptMaster recovers the message directly from the master key,
// bypassing any derived SecretKey.
func DecryptMaster(msk MasterKey, ct Ciphertext) bls12381.Fp12 {
	den := bls12381.Pairing(msk.G2Alpha.ToAffine(), ct.B.ToAffine())
	return den.Inv().Mul(ct.Blind)
}

// Sign produces a signature over message under sk's attributes,
// computing its own Precomputed attribute product.
func Sign(params Params, sk SecretKey, attrs AttributeList, message bls12381.Fr, rnd io.Reader) (Signature, error) {
	pre := PrecomputeForAttrs(params, attrs)
	return SignPrecomputed(params, sk, &attrs, pre, message, rnd)
}

// SignPrecomputed is Sign against an attribute product computed ahead
// of time; attrs may be nil when sk has no free slots left to fold in
// (a fully-qualified key).
func SignPrecomputed(params Params, sk SecretKey, attrs *AttributeList, pre Precomputed, message bls12381.Fr, rnd io.Reader) (Signature, error) {
	s, err := bls12381.FrRandom(rnd)
	if err != nil {
		return Signature{}, err
	}
	a0 := sk.BSig.ScalarMul(message).Add(sk.A0)
	prodexp := params.HSig.ScalarMul(message).Add(pre.ProdExp)
	a1 := params.G.ScalarMul(s)
	prodexp = prodexp.ScalarMul(s)
	a0 = a0.Add(prodexp)
	a1 = a1.Add(sk.A1)

	if attrs != nil {
		k := 0
		for _, fs := range sk.FreeSlots {
			for k < len(attrs.Attrs) && attrs.Attrs[k].Index < fs.Index {
				k++
			}
			if k == len(attrs.Attrs) {
				break
			}
			if fs.Index == attrs.Attrs[k].Index {
				a0 = a0.Add(fs.B.ScalarMul(attrs.Attrs[k].Value))
				k++
			}
		}
	}
	return Signature{A0: a0, A1: a1}, nil
}

// Verify checks sig over message under attrs, computing its own
// Precomputed attribute product.
func Verify(params Params, attrs AttributeList, sig Signature, message bls12381.Fr) bool {
	pre := PrecomputeForAttrs(params, attrs)
	return VerifyPrecomputed(params, pre, sig, message)
}

// VerifyPrecomputed is Verify against an attribute product computed
// ahead of time.
func VerifyPrecomputed(params Params, pre Precomputed, sig Signature, message bls12381.Fr) bool {
	prodexp := params.HSig.ScalarMul(message).Add(pre.ProdExp)
	ratio := bls12381.Pairing(sig.A0.ToAffine(), params.G.ToAffine())
	den := bls12381.Pairing(prodexp.ToAffine(), sig.A1.ToAffine())
	ratio = ratio.Mul(den.Inv())
	return ratio.Equal(params.Pairing)
}
