// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger store
//
// A single ordered key->value store (LevelDB or bbolt) split into
// tables by string prefix.  All multi-key updates are staged in a
// Transaction and written as one atomic batch.
//
// Notes:
// 1. ++           = concatenation of byte data
// 2. channel id   = Keccak-256(source ++ destination), 32 bytes
// 3. epoch        = big endian uint32 (4 bytes)
// 4. index        = big endian uint64 (8 bytes)
// 5. challenge    = half key challenge, compressed curve point (33 bytes)
// 6. address      = chain address (20 bytes)
// 7. record       = version byte ++ CBOR core deterministic encoding
//
// Channels:
//
//   channels- ++ channel id                        - channel entry
//                                                    data: record(channel entry)
//   ticketIndex- ++ channel id                     - next outgoing ticket index
//                                                    data: record(uint64)
//
// Tickets:
//
//   tickets:acknowledged- ++ channel id ++ epoch ++ index
//                                                  - acknowledged ticket
//                                                    data: record(acknowledged ticket)
//   tickets:pending-acknowledgement- ++ challenge  - pending acknowledgement
//                                                    data: record(pending acknowledgement)
//
// Statistics:
//
//   statistics:pending:value- ++ address           - value pending towards counterparty
//                                                    data: record(balance)
//   statistics:{redeemed,neglected,rejected}:{count,value}
//   statistics:losing:count                        - data: record(uint64) or record(balance)
//
// Chain:
//
//   latestConfirmedSnapshot, latestBlockNumber, ticketPrice, hoprBalance,
//   domainSeparator:{channels,ledger,safeRegistry}
//
// Packets:
//
//   packets:tag- ++ tag                            - processed packet tag
//                                                    data: 0x01
//
// Database:
//
//   version                                        - data: big endian uint32
package storage
