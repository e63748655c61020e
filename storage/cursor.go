// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/roomstore/roomd/fault"
)

// FetchCursor - iterate a pool in key order
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// NewFetchCursor - create a cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range
			Limit: p.limit,          // Limit of key range
		},
	}
}

// NewFetchCursorRange - create a cursor over the records whose keys
// begin with subPrefix
func (p *PoolHandle) NewFetchCursorRange(subPrefix []byte) *FetchCursor {
	start := p.prefixKey(subPrefix)

	// carry increment produces the smallest key greater than every
	// key starting with subPrefix
	limit := make([]byte, len(start))
	copy(limit, start)
	for i := len(limit) - 1; i >= 0; i -= 1 {
		limit[i] += 1
		if 0 != limit[i] {
			return &FetchCursor{
				pool: p,
				maxRange: ldb_util.Range{
					Start: start,
					Limit: limit,
				},
			}
		}
	}

	// all 0xff, fall back to the pool bound
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: start,
			Limit: p.limit,
		},
	}
}

// Seek - position the cursor just after a given unprefixed key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count records in key order, advancing the
// cursor past the last one returned
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.maxRange)
	defer iter.Release()

	results := make([]Element, 0, count)
	n := 0
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the pool prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})
		n += 1
		if n >= count {
			break
		}
	}

	if n > 0 {
		lastKey := results[n-1].Key
		seekKey := make([]byte, 1, len(lastKey)+2) // add prefix and a nul
		seekKey[0] = cursor.pool.prefix
		seekKey = append(seekKey, lastKey...)
		seekKey = append(seekKey, 0x00) // next possible key
		cursor.maxRange.Start = seekKey
	}

	return results, iter.Error()
}
