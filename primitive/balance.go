// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"

	"github.com/relaymesh/ticketledger/fault"
)

// BalanceLength - number of bytes in a serialised balance
const BalanceLength = 32

// Balance - a token amount
//
// all arithmetic saturates: subtraction floors at zero and
// addition or multiplication caps at 2^256-1
type Balance struct {
	v uint256.Int
}

// ZeroBalance - the empty amount
func ZeroBalance() Balance {
	return Balance{}
}

// NewBalance - balance from a small integer
func NewBalance(n uint64) Balance {
	b := Balance{}
	b.v.SetUint64(n)
	return b
}

// BalanceFromBig - convert, saturating at the maximum on overflow
func BalanceFromBig(n *big.Int) Balance {
	if nil == n || n.Sign() <= 0 {
		return Balance{}
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return maxBalance()
	}
	return Balance{v: *v}
}

// BalanceFromDecimal - parse a base 10 string
func BalanceFromDecimal(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if nil != err {
		return Balance{}, err
	}
	return Balance{v: *v}, nil
}

// BalanceFromBytes - decode a fixed width big endian value
func BalanceFromBytes(buffer []byte) (Balance, error) {
	if BalanceLength != len(buffer) {
		return Balance{}, fault.ErrValueLength
	}
	b := Balance{}
	b.v.SetBytes32(buffer)
	return b, nil
}

func maxBalance() Balance {
	b := Balance{}
	b.v.SetAllOne()
	return b
}

// Add - saturating addition
func (b Balance) Add(other Balance) Balance {
	r := Balance{}
	if _, overflow := r.v.AddOverflow(&b.v, &other.v); overflow {
		return maxBalance()
	}
	return r
}

// Sub - saturating subtraction
func (b Balance) Sub(other Balance) Balance {
	if b.v.Lt(&other.v) {
		return Balance{}
	}
	r := Balance{}
	r.v.Sub(&b.v, &other.v)
	return r
}

// Mul - saturating multiplication by a scalar
func (b Balance) Mul(n uint64) Balance {
	r := Balance{}
	if _, overflow := r.v.MulOverflow(&b.v, uint256.NewInt(n)); overflow {
		return maxBalance()
	}
	return r
}

// Cmp - -1, 0 or +1
func (b Balance) Cmp(other Balance) int {
	return b.v.Cmp(&other.v)
}

// Equal - same amount
func (b Balance) Equal(other Balance) bool {
	return b.v.Eq(&other.v)
}

// IsZero - nothing
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Bytes - always BalanceLength bytes, big endian
func (b Balance) Bytes() []byte {
	buffer := b.v.Bytes32()
	return buffer[:]
}

// Big - as a math/big integer
func (b Balance) Big() *big.Int {
	return b.v.ToBig()
}

// Size - serialised length
func (b Balance) Size() int {
	return BalanceLength
}

// String - base 10
func (b Balance) String() string {
	return b.v.Dec()
}

// MarshalText - base 10 text for JSON
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.v.Dec()), nil
}

// UnmarshalText - base 10 text from JSON
func (b *Balance) UnmarshalText(s []byte) error {
	v, err := uint256.FromDecimal(string(s))
	if nil != err {
		return err
	}
	b.v = *v
	return nil
}

// MarshalCBOR - fixed width byte string
func (b Balance) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.Bytes())
}

// UnmarshalCBOR - fixed width byte string
func (b *Balance) UnmarshalCBOR(data []byte) error {
	var buffer []byte
	if err := cbor.Unmarshal(data, &buffer); nil != err {
		return err
	}
	v, err := BalanceFromBytes(buffer)
	if nil != err {
		return err
	}
	*b = v
	return nil
}
