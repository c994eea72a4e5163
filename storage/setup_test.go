// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/keys"
	"github.com/relaymesh/ticketledger/storage"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}

	rc := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestOpenTagsNewDatabaseWithVersion(t *testing.T) {
	for _, backend := range []string{storage.BackendLevelDB, storage.BackendBolt, storage.BackendMemory} {
		name := filepath.Join(t.TempDir(), "ledger."+backend)

		db, err := storage.Open(backend, name, storage.ReadWrite)
		if !assert.Nil(t, err, "%s: open error", backend) {
			continue
		}

		version, err := db.Get(keys.Scalar(keys.Version))
		assert.Nil(t, err, "%s: get error", backend)
		assert.Equal(t, 4, len(version), "%s: wrong version length", backend)
		assert.Nil(t, db.Close(), "%s: close error", backend)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := storage.Open("sqlite", "nothing", storage.ReadWrite)
	assert.Equal(t, fault.ErrInvalidBackend, err, "wrong error")
}

func TestOpenRejectsNewerDatabase(t *testing.T) {
	name := filepath.Join(t.TempDir(), "newer.leveldb")

	db, err := storage.OpenLevelDB(name, storage.ReadWrite)
	assert.Nil(t, err, "open error")

	future := make([]byte, 4)
	binary.BigEndian.PutUint32(future, 0xffff)
	_, err = db.Set(keys.Scalar(keys.Version), future)
	assert.Nil(t, err, "set error")
	assert.Nil(t, db.Close(), "close error")

	_, err = storage.Open(storage.BackendLevelDB, name, storage.ReadWrite)
	assert.Equal(t, fault.ErrDatabaseVersion, err, "newer database accepted")
}
