// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/relaymesh/ticketledger/fault"
)

// byte lengths of the chain types
const (
	AddressLength = common.AddressLength
	HashLength    = common.HashLength
)

// Address - a chain account address
type Address = common.Address

// Hash - a 32 byte Keccak-256 digest, also used as channel identifier
type Hash = common.Hash

// AddressFromHex - parse a 0x prefixed or bare hex address
func AddressFromHex(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, fault.ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// HashFromHex - parse a 0x prefixed or bare 32 byte hex value
func HashFromHex(s string) (Hash, error) {
	b := common.FromHex(s)
	if HashLength != len(b) {
		return Hash{}, fault.ErrInvalidHexLength
	}
	return common.BytesToHash(b), nil
}
