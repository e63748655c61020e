// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Handle - the record access methods of a pool
//
// the unexported methods restrict mutation to the Transaction so no
// call site can write around the staging batch
type Handle interface {
	Get([]byte) []byte
	GetN([]byte) (uint64, bool)
	Has([]byte) bool
	put([]byte, []byte)
	remove([]byte)
	recordSize([]byte) uint64
}

// PoolHandle - represents a pool of database records with a common
// key prefix
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// Element - a binary key/value pair from a pool
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// stage a key/value pair into the current batch
func (p *PoolHandle) put(key []byte, value []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.put nil data access")
	}
	p.dataAccess.Put(p.prefixKey(key), value)
}

// stage removal of a key into the current batch
func (p *PoolHandle) remove(key []byte) {
	if nil == p.dataAccess {
		logger.Panic("pool.remove nil data access")
	}
	p.dataAccess.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// returns nil if the record was not found; staged writes in an open
// transaction are observed
func (p *PoolHandle) Get(key []byte) []byte {
	if nil == p.dataAccess {
		return nil
	}
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode as big endian uint64
//
// second parameter is false if the record was not found
// panics if the record is not exactly 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if uint64ByteSize != len(buffer) {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	if nil == p.dataAccess {
		return false
	}
	value, err := p.dataAccess.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

// byte count of an existing record including its prefixed key,
// zero if the record is absent
func (p *PoolHandle) recordSize(key []byte) uint64 {
	value := p.Get(key)
	if nil == value {
		return 0
	}
	return uint64(len(key)) + 1 + uint64(len(value))
}
