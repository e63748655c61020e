// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lobby - room lifecycle engine
//
// All room mutations run through this package.  An operation
// validates everything against current state, stages its writes in
// one storage transaction bracketed by a storage tracker, settles the
// byte deltas into the room owner's account and commits; any
// rejection aborts the transaction so no partial effect is ever
// visible.
//
// Storage is owner-pays: every byte a room occupies, including the
// entries other players cause, is charged to and credited back to the
// room owner's account.
package lobby

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/entropy"
	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/ledger"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// key of the room id sequence record
var sequenceKey = []byte("roomid")

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	source      entropy.Source
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - start up the lobby
//
// the entropy source feeds random room selection
func Initialise(source entropy.Source) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("lobby")
	globalData.log.Info("starting…")

	globalData.source = source
	globalData.initialised = true
	return nil
}

// Finalise - shut down the lobby
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.source = nil
	globalData.initialised = false
	return nil
}

// fetch and unpack a room record, observing staged state
func fetchRoom(roomId roomrecord.RoomId) (*roomrecord.Room, error) {
	packed := roomrecord.Packed(storage.Pool.Rooms.Get(roomId.Bytes()))
	if nil == packed {
		return nil, fault.RoomNotFound
	}
	room, err := packed.Unpack()
	if nil != err {
		globalData.log.Criticalf("corrupt room record for id: %d: %s", roomId, err)
		logger.Panic("lobby: room database corrupt")
	}
	return room, nil
}

// fetch a room and check it belongs to the app
func fetchAppRoom(app roomrecord.AppDigest, roomId roomrecord.RoomId) (*roomrecord.Room, error) {
	room, err := fetchRoom(roomId)
	if nil != err {
		return nil, err
	}
	if room.App != app {
		return nil, fault.WrongApp
	}
	return room, nil
}

// run staged writes bracketed by a tracker and settle the byte deltas
// into the given account
//
// all user-facing validation happens before this is called, so the
// only rejection possible here is the storage coverage check
func settleAndCommit(ownerId identity.ID, account *ledger.Account, stage func(trx storage.Transaction)) error {
	tracker := new(ledger.StorageTracker)

	trx, err := storage.NewDBTransaction(tracker)
	if nil != err {
		return err
	}

	tracker.Start()
	stage(trx)
	tracker.Stop()

	if err := account.Settle(tracker); nil != err {
		trx.Abort()
		return err
	}

	// the account record itself is not metered
	ledger.Store(trx, ownerId, account)

	return trx.Commit()
}
