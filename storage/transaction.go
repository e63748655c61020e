// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/roomstore/roomd/fault"
)

// Tracker - accounting bracket attached to a transaction
//
// while Active every staged write reports the serialized-size delta
// it causes; the tracker itself belongs to the ledger
type Tracker interface {
	Active() bool
	Add(uint64)
	Release(uint64)
}

// Transaction - staged mutation of the storage pools
//
// all pool writes stage into batches and only reach the databases on
// Commit; Abort discards everything staged
type Transaction interface {
	Abort()
	Begin(Tracker) error
	Commit() error
	Delete(Handle, []byte)
	DeleteUnmetered(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	InUse() bool
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	PutNUnmetered(Handle, []byte, uint64)
}

type transactionData struct {
	sync.Mutex
	dataAccess []Access
	tracker    Tracker
}

func newTransaction(access []Access) Transaction {
	return &transactionData{
		dataAccess: access,
	}
}

func (t *transactionData) Begin(tracker Tracker) error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		if access.InUse() {
			return fault.TransactionInUse
		}
	}

	for _, access := range t.dataAccess {
		_ = access.Begin()
	}

	t.tracker = tracker
	return nil
}

func (t *transactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		if access.InUse() {
			return true
		}
	}
	return false
}

// report the byte delta of an upcoming staged write
func (t *transactionData) trackPut(h Handle, key []byte, value []byte) {
	if nil == t.tracker || !t.tracker.Active() {
		return
	}
	before := h.recordSize(key)
	after := uint64(len(key)) + 1 + uint64(len(value))
	switch {
	case 0 == before:
		t.tracker.Add(after)
	case after > before:
		t.tracker.Add(after - before)
	case before > after:
		t.tracker.Release(before - after)
	}
}

// report the byte delta of an upcoming staged delete
func (t *transactionData) trackDelete(h Handle, key []byte) {
	if nil == t.tracker || !t.tracker.Active() {
		return
	}
	if before := h.recordSize(key); before > 0 {
		t.tracker.Release(before)
	}
}

func (t *transactionData) Put(h Handle, key []byte, value []byte) {
	t.trackPut(h, key, value)
	h.put(key, value)
}

func (t *transactionData) PutN(h Handle, key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(h, key, buffer)
}

// PutNUnmetered - stage a big endian uint64 record the tracker does
// not observe
//
// only for records shared across owners, the counter of available
// rooms in an app is not attributable to any single account so its
// bytes must not be charged or credited to whichever caller happens
// to touch it
func (t *transactionData) PutNUnmetered(h Handle, key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	h.put(key, buffer)
}

func (t *transactionData) Delete(h Handle, key []byte) {
	t.trackDelete(h, key)
	h.remove(key)
}

// DeleteUnmetered - stage a removal the tracker does not observe
//
// counterpart of PutNUnmetered for shared records
func (t *transactionData) DeleteUnmetered(h Handle, key []byte) {
	h.remove(key)
}

func (t *transactionData) Get(h Handle, key []byte) []byte {
	return h.Get(key)
}

func (t *transactionData) GetN(h Handle, key []byte) (uint64, bool) {
	return h.GetN(key)
}

func (t *transactionData) Has(h Handle, key []byte) bool {
	return h.Has(key)
}

func (t *transactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		if err := access.Commit(); nil != err {
			return err
		}
	}
	t.abort()
	return nil
}

func (t *transactionData) Abort() {
	t.Lock()
	defer t.Unlock()
	t.abort()
}

// must hold the lock
func (t *transactionData) abort() {
	for _, access := range t.dataAccess {
		access.Abort()
	}
	t.tracker = nil
}
