// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - staged writes of a transaction, visible to its own reads
//
// Get reports found for both puts and deletes; a deleted key
// returns a nil value
type Cache interface {
	Get(string) ([]byte, bool)
	Set(Operation, string, []byte)
	Clear()
}

// staged entries live until the transaction ends
const defaultCleanupInterval = 1 * time.Minute

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    Operation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, defaultCleanupInterval),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if OpDelete == data.op {
		return nil, true
	}
	return data.value, true
}

func (c *dbCache) Set(op Operation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
