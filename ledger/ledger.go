// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/relaymesh/ticketledger/counter"
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/primitive"
	"github.com/relaymesh/ticketledger/storage"
)

// Ledger - ticket and channel store of one node
type Ledger struct {
	sync.Mutex // single writer

	db      storage.Database
	tx      *storage.Transaction
	me      primitive.Address
	cache   *unrealizedCache
	metrics *Metrics
	log     *logger.L

	commits  counter.Counter
	failures counter.Counter
}

// New - create a ledger for the node with chain address me
//
// the unrealized balance cache starts empty, call InitCache to
// rebuild it from stored tickets
func New(db storage.Database, me primitive.Address, metrics *Metrics) (*Ledger, error) {
	if nil == db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if (primitive.Address{}) == me {
		return nil, fault.ErrInvalidNodeAddress
	}
	if nil == metrics {
		metrics = newMetrics("")
	}

	l := &Ledger{
		db:      db,
		tx:      storage.NewTransaction(db, nil),
		me:      me,
		cache:   newUnrealizedCache(),
		metrics: metrics,
		log:     logger.New("ledger"),
	}
	l.log.Infof("ledger for node: %s", me)
	return l, nil
}

// Me - chain address of the local node
func (l *Ledger) Me() primitive.Address {
	return l.me
}

// ReadCounters - number of committed and failed batches
func (l *Ledger) ReadCounters() (commits uint64, failures uint64) {
	return l.commits.Uint64(), l.failures.Uint64()
}

// update - run f inside a transaction, commit its writes, then run
// the function it returned
//
// f stages writes and must not touch the cache; the returned
// function applies in-memory effects and runs only after a
// successful commit
func (l *Ledger) update(flush bool, f func(tx *storage.Transaction) (func(), error)) error {
	l.Lock()
	defer l.Unlock()

	if err := l.tx.Begin(); nil != err {
		return err
	}

	after, err := f(l.tx)
	if nil != err {
		l.tx.Abort()
		return err
	}

	if 0 == l.tx.Len() {
		l.tx.Abort()
	} else if err := l.tx.Commit(flush); nil != err {
		l.failures.Increment()
		l.log.Errorf("batch commit failed: %s", err)
		return err
	} else {
		l.commits.Increment()
	}

	if nil != after {
		after()
	}
	return nil
}
