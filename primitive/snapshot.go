// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitive

import (
	"fmt"
)

// Snapshot - position of the last chain log applied to the ledger
type Snapshot struct {
	BlockNumber      uint64 `cbor:"1,keyasint" json:"blockNumber"`
	TransactionIndex uint64 `cbor:"2,keyasint" json:"transactionIndex"`
	LogIndex         uint64 `cbor:"3,keyasint" json:"logIndex"`
}

// NewSnapshot - construct a snapshot
func NewSnapshot(block uint64, transaction uint64, log uint64) Snapshot {
	return Snapshot{
		BlockNumber:      block,
		TransactionIndex: transaction,
		LogIndex:         log,
	}
}

// Before - strictly earlier chain position
func (s Snapshot) Before(other Snapshot) bool {
	if s.BlockNumber != other.BlockNumber {
		return s.BlockNumber < other.BlockNumber
	}
	if s.TransactionIndex != other.TransactionIndex {
		return s.TransactionIndex < other.TransactionIndex
	}
	return s.LogIndex < other.LogIndex
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%d/%d/%d", s.BlockNumber, s.TransactionIndex, s.LogIndex)
}
