// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/ledger"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/record"
	"github.com/relaymesh/ticketledger/storage/mocks"
)

func TestUnrealizedBalanceOfUnknownChannelIsZero(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 0, 1)
	assert.Equal(t, primitive.ZeroBalance(), unrealized(t, l, ch), "wrong unrealized balance")
}

func TestUnrealizedBalanceAfterRedemption(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 17, 7)
	updateChannel(t, l, ch)
	assert.Equal(t, oneToken, unrealized(t, l, ch), "fresh channel not fully unrealized")

	a17 := primitive.NewBalance(50_000_000_000_000_000)
	a18 := primitive.NewBalance(30_000_000_000_000_000)
	t17 := makeTicket(ch, 7, 17, a17)
	t18 := makeTicket(ch, 7, 18, a18)
	acknowledge(t, l, t17, t18)

	expected := oneToken.Sub(a17).Sub(a18)
	assert.Equal(t, expected, unrealized(t, l, ch), "wrong balance after acknowledging")

	// redemption alone leaves the cache alone
	require.NoError(t, l.MarkRedeemed(t18), "redeem error")
	assert.Equal(t, expected, unrealized(t, l, ch), "redemption changed unrealized balance")

	settled := incomingChannel(oneToken.Sub(a18), 19, 7)
	updateChannel(t, l, settled)
	assert.Equal(t, oneToken.Sub(a18).Sub(a17), unrealized(t, l, ch), "wrong balance after settlement")
}

func TestFundingNeverDecreasesUnrealizedBalance(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 0, 3)
	updateChannel(t, l, ch)

	amount := primitive.NewBalance(1000)
	acknowledge(t, l, makeTicket(ch, 3, 0, amount), makeTicket(ch, 3, 1, amount))
	before := unrealized(t, l, ch)

	funded := incomingChannel(oneToken.Mul(2), 0, 3)
	updateChannel(t, l, funded)
	after := unrealized(t, l, ch)

	assert.True(t, after.Cmp(before) > 0, "funding decreased unrealized balance")
	assert.Equal(t, oneToken.Mul(2).Sub(amount.Mul(2)), after, "wrong balance after funding")
}

func TestReopenResetsOutstandingValue(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 0, 4)
	updateChannel(t, l, ch)
	acknowledge(t, l, makeTicket(ch, 4, 0, primitive.NewBalance(500)))
	assert.Equal(t, oneToken.Sub(primitive.NewBalance(500)), unrealized(t, l, ch), "ticket not counted")

	reopened := incomingChannel(oneToken, 0, 5)
	updateChannel(t, l, reopened)
	assert.Equal(t, oneToken, unrealized(t, l, ch), "reopen kept outstanding value")
}

func TestLosingTicketReleasesOutstandingValue(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 17, 7)
	updateChannel(t, l, ch)

	amount := primitive.NewBalance(50_000_000_000_000_000)
	losing := makeTicket(ch, 7, 17, amount)
	acknowledge(t, l, losing, makeTicket(ch, 7, 18, amount))

	require.NoError(t, l.MarkLosingAckedTicket(losing), "mark losing error")
	assert.Equal(t, oneToken.Sub(amount), unrealized(t, l, ch), "losing ticket still outstanding")

	n, err := l.GetLosingTicketsCount()
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(1), n, "wrong losing count")

	remaining, err := l.GetAcknowledgedTicketsCount(ch)
	assert.Nil(t, err, "count error")
	assert.Equal(t, 1, remaining, "losing ticket not removed")
}

func TestInitCacheCountsCurrentTicketsOnly(t *testing.T) {
	l, db := setupLedger(t)

	ch := incomingChannel(oneToken, 20, 7)
	updateChannel(t, l, ch)

	amount := primitive.NewBalance(50_000_000_000_000_000)
	acknowledge(t, l,
		makeTicket(ch, 6, 25, amount), // old epoch
		makeTicket(ch, 7, 19, amount), // below the ticket index
		makeTicket(ch, 7, 20, amount),
		makeTicket(ch, 7, 21, amount),
		makeTicket(ch, 8, 22, amount), // future epoch
	)

	// a fresh ledger on the same database starts without a cache
	restarted, err := ledger.New(db, alice, nil)
	require.NoError(t, err, "ledger error")
	assert.Equal(t, oneToken, unrealized(t, restarted, ch), "cache present before rebuild")

	require.NoError(t, restarted.InitCache(), "init cache error")
	assert.Equal(t, oneToken.Sub(amount.Mul(2)), unrealized(t, restarted, ch), "wrong rebuilt balance")
}

func TestInitCacheIgnoresTicketsOfUnknownChannels(t *testing.T) {
	l, _ := setupLedger(t)

	ch := incomingChannel(oneToken, 0, 1)
	acknowledge(t, l, makeTicket(ch, 1, 0, primitive.NewBalance(10)))

	require.NoError(t, l.InitCache(), "init cache error")
	assert.Equal(t, primitive.ZeroBalance(), unrealized(t, l, ch), "unknown channel has a balance")
}

func TestFailedCommitLeavesCacheUnchanged(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	l, err := ledger.New(db, alice, nil)
	require.NoError(t, err, "ledger error")

	ch := incomingChannel(oneToken, 0, 1)
	a := makeTicket(ch, 1, 0, primitive.NewBalance(100))

	db.EXPECT().Write(gomock.Any(), false).Return(errors.New("disk full")).Times(1)
	err = l.ReplaceUnackWithAck(challengeOf(&a.Ticket), a)
	assert.EqualError(t, err, "disk full", "wrong error")

	stored, err := record.Pack(ch)
	require.NoError(t, err, "pack error")
	db.EXPECT().Get(keys.Channel(ch.ID())).Return(stored, nil).Times(1)
	assert.Equal(t, oneToken, unrealized(t, l, ch), "cache changed by failed commit")

	commits, failures := l.ReadCounters()
	assert.Equal(t, uint64(0), commits, "wrong commit count")
	assert.Equal(t, uint64(1), failures, "wrong failure count")
}
