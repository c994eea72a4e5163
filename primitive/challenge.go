// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive

import (
	"encoding/hex"

	"github.com/relaymesh/ticketledger/fault"
)

// byte lengths of the relay proof values
const (
	EthereumChallengeLength = 20
	HalfKeyChallengeLength  = 33
	HalfKeyLength           = 32
	ResponseLength          = 32
	SignatureLength         = 64
)

// EthereumChallenge - on-chain form of the proof of relay commitment
type EthereumChallenge [EthereumChallengeLength]byte

// HalfKeyChallenge - compressed curve point identifying a pending acknowledgement
type HalfKeyChallenge [HalfKeyChallengeLength]byte

// HalfKey - this node's contribution to the relay proof
type HalfKey [HalfKeyLength]byte

// Response - the combined relay proof
type Response [ResponseLength]byte

// Signature - compact ticket signature
type Signature [SignatureLength]byte

func (c EthereumChallenge) Size() int { return EthereumChallengeLength }
func (c HalfKeyChallenge) Size() int  { return HalfKeyChallengeLength }
func (k HalfKey) Size() int           { return HalfKeyLength }
func (r Response) Size() int          { return ResponseLength }
func (s Signature) Size() int         { return SignatureLength }

func (c EthereumChallenge) MarshalText() ([]byte, error) { return hexText(c[:]), nil }
func (c HalfKeyChallenge) MarshalText() ([]byte, error)  { return hexText(c[:]), nil }
func (k HalfKey) MarshalText() ([]byte, error)           { return hexText(k[:]), nil }
func (r Response) MarshalText() ([]byte, error)          { return hexText(r[:]), nil }
func (s Signature) MarshalText() ([]byte, error)         { return hexText(s[:]), nil }

func (c *EthereumChallenge) UnmarshalText(s []byte) error { return fromHexText(c[:], s) }
func (c *HalfKeyChallenge) UnmarshalText(s []byte) error  { return fromHexText(c[:], s) }
func (k *HalfKey) UnmarshalText(s []byte) error           { return fromHexText(k[:], s) }
func (r *Response) UnmarshalText(s []byte) error          { return fromHexText(r[:], s) }
func (sig *Signature) UnmarshalText(s []byte) error       { return fromHexText(sig[:], s) }

// HalfKeyChallengeFromHex - parse the identifier of a pending acknowledgement
func HalfKeyChallengeFromHex(s string) (HalfKeyChallenge, error) {
	c := HalfKeyChallenge{}
	err := c.UnmarshalText([]byte(s))
	return c, err
}

func hexText(b []byte) []byte {
	buffer := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(buffer, b)
	return buffer
}

func fromHexText(to []byte, s []byte) error {
	if len(s) >= 2 && '0' == s[0] && ('x' == s[1] || 'X' == s[1]) {
		s = s[2:]
	}
	if len(to) != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidHexLength
	}
	_, err := hex.Decode(to, s)
	return err
}
