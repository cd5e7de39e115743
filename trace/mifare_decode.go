// go-hfcore
// Copyright (c) 2026 The go-hfcore Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later

package trace

import "github.com/rfresearch/go-hfcore/crypto1"

// MifareDecoder maintains CRYPTO-1 cipher state across a trace session,
// decrypting MIFARE Classic/Plus (security level 1) traffic once a key
// from the caller's dictionary matches the most recent AUTH exchange.
type MifareDecoder struct {
	state  *crypto1.State
	active bool
}

// NewMifareDecoder returns a decoder with no active cipher state; callers
// must call StartSession after observing a successful AUTH to begin
// decoding subsequent traffic.
func NewMifareDecoder() *MifareDecoder {
	return &MifareDecoder{}
}

// StartSession seeds the cipher with key and recovers the initial state
// from the nonce exchange (nT, {nR}Ks, uid), mirroring the mutual
// authentication's keystream alignment: the first 32 keystream bits
// encrypt nR, so replaying Word() against the known key and uid^nT seed
// reproduces the same keystream the card and reader used.
func (d *MifareDecoder) StartSession(key [6]byte, uid, nT uint32) {
	d.state = crypto1.StateFromKey(key)
	crypto1.Word(d.state, uid^nT, false)
	d.active = true
}

// Decrypt XORs each whole 4-byte word of ciphertext against the next 32
// keystream bits, advancing the cipher state, and returns the plaintext —
// the secondary '*' row the annotation engine prints beneath an encrypted
// MIFARE Classic exchange once a matching key is found. Trailing bytes
// past the last whole word come back as zero and consume no keystream.
func (d *MifareDecoder) Decrypt(ciphertext []byte) ([]byte, bool) {
	if !d.active {
		return nil, false
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i+4 <= len(ciphertext); i += 4 {
		word := be32(ciphertext[i : i+4])
		ks := crypto1.Word(d.state, word, true)
		plain := word ^ ks
		out[i] = byte(plain >> 24)
		out[i+1] = byte(plain >> 16)
		out[i+2] = byte(plain >> 8)
		out[i+3] = byte(plain)
	}
	return out, true
}

// EndSession drops the active cipher state, e.g. on HALT or a new AUTH.
func (d *MifareDecoder) EndSession() {
	d.active = false
	d.state = nil
}
