// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - versioned binary encoding of stored values
//
// a record is a single version byte followed by the value in CBOR
// core deterministic encoding, so equal values always produce
// identical bytes
package record

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/relaymesh/ticketledger/fault"
)

// Version - current record version
const Version byte = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if nil != err {
		panic("record: CBOR encoder initialisation failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if nil != err {
		panic("record: CBOR decoder initialisation failed: " + err.Error())
	}
}

// Pack - encode a value as a versioned record
func Pack(v interface{}) ([]byte, error) {
	body, err := encMode.Marshal(v)
	if nil != err {
		return nil, err
	}
	buffer := make([]byte, 1, 1+len(body))
	buffer[0] = Version
	return append(buffer, body...), nil
}

// Unpack - decode a versioned record into v
func Unpack(data []byte, v interface{}) error {
	if len(data) < 2 {
		return fault.ErrRecordTruncated
	}
	if Version != data[0] {
		return fault.ErrRecordVersion
	}
	return decMode.Unmarshal(data[1:], v)
}
