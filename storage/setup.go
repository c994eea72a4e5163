// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
)

// supported backends
const (
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// for database version
var versionKey = keys.Scalar(keys.Version)

const currentVersion = 0x100

// Open - open a database and ensure it is not from a newer release
func Open(backend string, name string, readOnly bool) (Database, error) {
	log := logger.New("storage")

	var db Database
	var err error
	switch backend {
	case BackendLevelDB:
		db, err = OpenLevelDB(name, readOnly)
	case BackendBolt:
		db, err = OpenBolt(name, readOnly)
	case BackendMemory:
		db, err = NewMemoryLevelDB()
	default:
		return nil, fault.ErrInvalidBackend
	}
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentVersion)
		db.Close()
		return nil, fault.ErrDatabaseVersion
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		if err := putVersion(db, currentVersion); nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened %s database: %q  version: 0x%x", backend, name, currentVersion)
	return db, nil
}

// return 0 for a database without a version
func getVersion(db Database) (int, error) {
	versionValue, err := db.Get(versionKey)
	if nil != err {
		return 0, err
	}
	if nil == versionValue {
		return 0, nil
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db Database, version int) error {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, uint32(version))

	_, err := db.Set(versionKey, buffer)
	return err
}
