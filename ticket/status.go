// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ticket

import (
	"fmt"

	"github.com/relaymesh/ticketledger/primitive"
)

// StatusKind - what is currently happening to an acknowledged ticket
type StatusKind uint8

// the kinds of status
const (
	KindUntouched StatusKind = iota
	KindBeingAggregated
	KindBeingRedeemed
)

// Status - lifecycle status of an acknowledged ticket
//
// Start and End are only meaningful while being aggregated and
// TxHash only while being redeemed
type Status struct {
	Kind   StatusKind     `cbor:"1,keyasint" json:"kind"`
	Start  uint64         `cbor:"2,keyasint,omitempty" json:"start,omitempty"`
	End    uint64         `cbor:"3,keyasint,omitempty" json:"end,omitempty"`
	TxHash primitive.Hash `cbor:"4,keyasint,omitempty" json:"txHash,omitempty"`
}

// Untouched - not selected for aggregation or redemption
func Untouched() Status {
	return Status{Kind: KindUntouched}
}

// BeingAggregated - selected for the aggregation of range [start, end)
func BeingAggregated(start uint64, end uint64) Status {
	return Status{Kind: KindBeingAggregated, Start: start, End: end}
}

// BeingRedeemed - submitted on chain in transaction tx
func BeingRedeemed(tx primitive.Hash) Status {
	return Status{Kind: KindBeingRedeemed, TxHash: tx}
}

func (s Status) IsUntouched() bool       { return KindUntouched == s.Kind }
func (s Status) IsBeingAggregated() bool { return KindBeingAggregated == s.Kind }
func (s Status) IsBeingRedeemed() bool   { return KindBeingRedeemed == s.Kind }

func (s Status) String() string {
	switch s.Kind {
	case KindUntouched:
		return "Untouched"
	case KindBeingAggregated:
		return fmt.Sprintf("BeingAggregated(%d..%d)", s.Start, s.End)
	case KindBeingRedeemed:
		return fmt.Sprintf("BeingRedeemed(%s)", s.TxHash)
	default:
		return "Unknown"
	}
}

func (k StatusKind) MarshalText() ([]byte, error) {
	switch k {
	case KindUntouched:
		return []byte("untouched"), nil
	case KindBeingAggregated:
		return []byte("being-aggregated"), nil
	case KindBeingRedeemed:
		return []byte("being-redeemed"), nil
	}
	return nil, fmt.Errorf("unknown ticket status kind: %d", k)
}
