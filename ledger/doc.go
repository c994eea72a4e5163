// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - channels, tickets and their derived balances
//
// The ledger is the system of record for payment channels and the
// probabilistic tickets issued against them.  Every mutation is one
// atomic batch; the in-memory unrealized balance cache is adjusted
// only after that batch has been committed.
//
// A Ledger assumes a single writer: mutating calls are serialised
// internally, but callers must still avoid interleaving dependent
// sequences (for example two aggregations of the same channel).
// Reads go straight to the database and never block.
package ledger
