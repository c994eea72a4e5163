// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Operation - kind of a staged write
type Operation int

// the staged write kinds
const (
	OpPut Operation = iota
	OpDelete
)

// BatchReplay - receiver of the operations of a batch, in order
type BatchReplay interface {
	Put(key []byte, value []byte)
	Delete(key []byte)
}

type batchOperation struct {
	op    Operation
	key   []byte
	value []byte
}

// Batch - ordered list of writes applied atomically
type Batch struct {
	operations []batchOperation
}

// NewBatch - create an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Put - stage a write of a key
func (b *Batch) Put(key []byte, value []byte) {
	b.operations = append(b.operations, batchOperation{op: OpPut, key: clone(key), value: clone(value)})
}

// Delete - stage a removal of a key
func (b *Batch) Delete(key []byte) {
	b.operations = append(b.operations, batchOperation{op: OpDelete, key: clone(key)})
}

// Len - number of staged operations
func (b *Batch) Len() int {
	return len(b.operations)
}

// Reset - discard all staged operations
func (b *Batch) Reset() {
	b.operations = b.operations[:0]
}

// Replay - feed every operation to r in staging order
func (b *Batch) Replay(r BatchReplay) {
	for _, o := range b.operations {
		switch o.op {
		case OpPut:
			r.Put(o.key, o.value)
		case OpDelete:
			r.Delete(o.key)
		}
	}
}
