// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/storage"
)

// test database file
const (
	databaseFileName = "test"
	testingDirName   = "testing"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
	os.RemoveAll(databaseFileName + "-data.leveldb")
	os.RemoveAll(databaseFileName + "-index.leveldb")
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()

	_ = os.Mkdir(testingDirName, 0700)
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
	_ = logger.Initialise(logging)

	_, err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// stage a single put and commit it
func poolPut(t *testing.T, p *storage.PoolHandle, key string, data string) {
	trx, err := storage.NewDBTransaction(nil)
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	trx.Put(p, []byte(key), []byte(data))
	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}
}

// stage a single delete and commit it
func poolDelete(t *testing.T, p *storage.PoolHandle, key string) {
	trx, err := storage.NewDBTransaction(nil)
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	trx.Delete(p, []byte(key))
	err = trx.Commit()
	if nil != err {
		t.Fatalf("transaction commit error: %s", err)
	}
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// data for various test routines

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one(NEW)"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
	// {"key-one", "data-one"}, // this was removed
})

// a key that must not exist
var nonExistantKey = []byte("/nonexistant")

// sample key and data
var testKey = []byte("key-two")
var testData = "data-two"
