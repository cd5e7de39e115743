// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package iso15693

import (
	"context"
	"fmt"
	"math/big"

	hfcore "github.com/rfresearch/go-hfcore"
)

// secp128r1 domain parameters (SEC 2, recommended 128-bit prime curve),
// used by NXP's SLIX2/NTAG 21x originality signatures. crypto/elliptic
// carries no 128-bit curve, so the field/curve arithmetic needed to check
// a signature is implemented directly on math/big.Int.
var (
	secp128r1P  = mustHex("FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF")
	secp128r1A  = mustHex("FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFC")
	secp128r1B  = mustHex("E87579C11079F43DD824993C2CEE5ED3")
	secp128r1Gx = mustHex("161FF7528B899B2D0C28607CA52C5B86")
	secp128r1Gy = mustHex("CF5AC8395BAFEB13C02DA292DDED7A83")
	secp128r1N  = mustHex("FFFFFFFE0000000075A30D1B9038A115")
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("iso15693: invalid secp128r1 constant")
	}
	return n
}

// point is an affine point on secp128r1. A nil X denotes the point at
// infinity.
type point struct{ x, y *big.Int }

func (p point) isInfinity() bool { return p.x == nil }

func curveAdd(p, q point) point {
	if p.isInfinity() {
		return q
	}
	if q.isInfinity() {
		return p
	}
	mod := secp128r1P
	if p.x.Cmp(q.x) == 0 {
		if p.y.Cmp(q.y) != 0 || p.y.Sign() == 0 {
			return point{}
		}
		// doubling: lambda = (3x^2 + a) / 2y
		num := new(big.Int).Mul(p.x, p.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, secp128r1A)
		den := new(big.Int).Lsh(p.y, 1)
		lambda := modDiv(num, den, mod)
		return finishAdd(p, p, lambda, mod)
	}
	num := new(big.Int).Sub(q.y, p.y)
	den := new(big.Int).Sub(q.x, p.x)
	lambda := modDiv(num, den, mod)
	return finishAdd(p, q, lambda, mod)
}

func finishAdd(p, q point, lambda, mod *big.Int) point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.x)
	x3.Sub(x3, q.x)
	x3.Mod(x3, mod)

	y3 := new(big.Int).Sub(p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.y)
	y3.Mod(y3, mod)

	return point{x: x3, y: y3}
}

func modDiv(num, den, mod *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(new(big.Int).Mod(den, mod), mod)
	r := new(big.Int).Mul(num, inv)
	return r.Mod(r, mod)
}

func scalarMul(k *big.Int, p point) point {
	result := point{}
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = curveAdd(result, addend)
		}
		addend = curveAdd(addend, addend)
	}
	return result
}

// VerifySLIX2Signature checks the 32-byte ECDSA signature NXP's SLIX2 and
// NTAG 21x originality feature returns over the card's UID against an
// issuer public key on secp128r1. The ECDSA message value is the UID read
// directly as a big-endian integer: no hash is applied, and no
// byte-reversed form of the UID or the signature is tried.
func VerifySLIX2Signature(uid [8]byte, signature [32]byte, pubKey point) bool {
	r := new(big.Int).SetBytes(signature[:16])
	s := new(big.Int).SetBytes(signature[16:])
	if r.Sign() == 0 || s.Sign() == 0 || r.Cmp(secp128r1N) >= 0 || s.Cmp(secp128r1N) >= 0 {
		return false
	}

	e := new(big.Int).SetBytes(uid[:])
	e.Mod(e, secp128r1N)

	sInv := new(big.Int).ModInverse(s, secp128r1N)
	u1 := new(big.Int).Mul(e, sInv)
	u1.Mod(u1, secp128r1N)
	u2 := new(big.Int).Mul(r, sInv)
	u2.Mod(u2, secp128r1N)

	g := point{x: secp128r1Gx, y: secp128r1Gy}
	p1 := scalarMul(u1, g)
	p2 := scalarMul(u2, pubKey)
	sum := curveAdd(p1, p2)
	if sum.isInfinity() {
		return false
	}

	v := new(big.Int).Mod(sum.x, secp128r1N)
	return v.Cmp(r) == 0
}

// GetSignature retrieves the card's NXP originality signature via the
// IC-manufacturer custom command.
func (h *Handle) GetSignature(ctx context.Context) ([32]byte, error) {
	var sig [32]byte
	resp, err := h.session.Exchange(ctx, CmdGetSignature, [3]uint32{}, h.UID[:])
	if err != nil {
		return sig, fmt.Errorf("iso15693 get signature: %w", err)
	}
	if len(resp.Payload) != 32 {
		return sig, hfcore.NewLinkError("iso15693 get signature", "", hfcore.ErrInvalidParameter, hfcore.KindProtocol)
	}
	copy(sig[:], resp.Payload)
	return sig, nil
}
