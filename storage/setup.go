// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Rooms          *PoolHandle `prefix:"R" database:"data"`
	Accounts       *PoolHandle `prefix:"A" database:"data"`
	Sequence       *PoolHandle `prefix:"G" database:"data"`
	AvailableRooms *PoolHandle `prefix:"V" database:"index"`
	AvailableCount *PoolHandle `prefix:"K" database:"index"`
	CurrentRoom    *PoolHandle `prefix:"C" database:"index"`
	OwnerNextCount *PoolHandle `prefix:"N" database:"index"`
	OwnerList      *PoolHandle `prefix:"L" database:"index"`
	OwnerRoomIndex *PoolHandle `prefix:"D" database:"index"`
	TestData       *PoolHandle `prefix:"Z" database:"index"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDataDBVersion  = 0x100
	currentIndexDBVersion = 0x100

	uint64ByteSize = 8
)

// holds the database handles
var poolData struct {
	sync.RWMutex
	dbData   *leveldb.DB
	dbIndex  *leveldb.DB
	trx      Transaction
	dataTrx  *leveldb.Batch
	indexTrx *leveldb.Batch
	cache    Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connections
//
// this must be called before any pool is accessed; returns true if
// the index database was dropped and must be rebuilt
func Initialise(database string, readOnly bool) (bool, error) {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false
	mustReindex := false

	if nil != poolData.dbData {
		return mustReindex, fault.AlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	dataDatabase := database + "-data.leveldb"
	indexDatabase := database + "-index.leveldb"

	db, dataVersion, err := getDB(dataDatabase, readOnly)
	if nil != err {
		return mustReindex, err
	}
	poolData.dbData = db

	// ensure no database downgrade
	if dataVersion > currentDataDBVersion {
		logger.Criticalf("data database version: %d > current version: %d", dataVersion, currentDataDBVersion)
		return mustReindex, fmt.Errorf("data database version: %d > current version: %d", dataVersion, currentDataDBVersion)
	}

	db, indexVersion, err := getDB(indexDatabase, readOnly)
	if nil != err {
		return mustReindex, err
	}
	poolData.dbIndex = db

	// ensure no database downgrade
	if indexVersion > currentIndexDBVersion {
		logger.Criticalf("index database version: %d > current version: %d", indexVersion, currentIndexDBVersion)
		return mustReindex, fmt.Errorf("index database version: %d > current version: %d", indexVersion, currentIndexDBVersion)
	}

	// prevent readOnly from modifying the database
	if readOnly && (dataVersion != currentDataDBVersion || indexVersion != currentIndexDBVersion) {
		logger.Criticalf("database is inconsistent: data: %d  index: %d  current: %d & %d", dataVersion, indexVersion, currentDataDBVersion, currentIndexDBVersion)
		return mustReindex, fmt.Errorf("database is inconsistent: data: %d  index: %d  current: %d & %d", dataVersion, indexVersion, currentDataDBVersion, currentIndexDBVersion)
	}

	if 0 == dataVersion {

		// database was empty so tag as current version
		err = putVersion(poolData.dbData, currentDataDBVersion)
		if nil != err {
			return mustReindex, err
		}
	}

	// see if index needs to be deleted and re-created
	if indexVersion < currentIndexDBVersion {

		mustReindex = true

		// close out current index
		poolData.dbIndex.Close()
		poolData.dbIndex = nil

		logger.Criticalf("drop index database: %s", indexDatabase)

		// erase the index completely
		err = os.RemoveAll(indexDatabase)
		if nil != err {
			return mustReindex, err
		}

		// generate an empty index database
		poolData.dbIndex, _, err = getDB(indexDatabase, readOnly)
		if nil != err {
			return mustReindex, err
		}
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// databases
	poolData.dataTrx = new(leveldb.Batch)
	poolData.indexTrx = new(leveldb.Batch)
	poolData.cache = newCache()
	dataDBAccess := newDA(poolData.dbData, poolData.dataTrx, poolData.cache)
	indexDBAccess := newDA(poolData.dbIndex, poolData.indexTrx, poolData.cache)
	access := []Access{dataDBAccess, indexDBAccess}
	poolData.trx = newTransaction(access)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return mustReindex, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		var dataAccess Access
		switch dbName := fieldInfo.Tag.Get("database"); dbName {
		case "data":
			dataAccess = dataDBAccess
		case "index":
			dataAccess = indexDBAccess
		default:
			return mustReindex, fmt.Errorf("pool: %v  has invalid database: %q", fieldInfo, dbName)
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: dataAccess,
		}

		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	ok = true // prevent db close
	return mustReindex, nil
}

func dbClose() {
	if nil != poolData.dbIndex {
		poolData.dbIndex.Close()
		poolData.dbIndex = nil
	}
	if nil != poolData.dbData {
		poolData.dbData.Close()
		poolData.dbData = nil
	}
}

// Finalise - close the database connections
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// ReindexDone - called at the end of a rebuild to tag the index
// database as current
func ReindexDone() error {
	poolData.Lock()
	defer poolData.Unlock()
	return putVersion(poolData.dbIndex, currentIndexDBVersion)
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - begin a transaction over both databases
//
// tracker may be nil when the mutation is not metered
func NewDBTransaction(tracker Tracker) (Transaction, error) {
	err := poolData.trx.Begin(tracker)
	if nil != err {
		return nil, err
	}
	return poolData.trx, nil
}
