// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lobby

import (
	"github.com/roomstore/roomd/appindex"
	"github.com/roomstore/roomd/entropy"
	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/ledger"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// Join - enter a specific room as a player
//
// the bytes the new player occupies are charged to the room owner
func Join(roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return err
	}
	if err := caller.Validate(); nil != err {
		return err
	}

	return join(roomId, app.Digest(), caller)
}

// RandomJoin - enter some available room of the app
//
// the available set must be checked for emptiness before any random
// pick is attempted
func RandomJoin(app roomrecord.AppName, caller identity.ID) (roomrecord.RoomId, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return 0, err
	}
	if err := caller.Validate(); nil != err {
		return 0, err
	}

	digest := app.Digest()

	if _, ok := appindex.Current(digest, caller); ok {
		return 0, fault.AlreadyInRoom
	}

	n := appindex.CountAvailable(digest)
	if 0 == n {
		return 0, fault.NoRoomsAvailable
	}

	seed, err := globalData.source.Seed()
	if nil != err {
		return 0, err
	}
	position := entropy.Pick(seed, 0, int(n))

	roomIds, err := appindex.ListAvailable(digest, uint64(position), 1)
	if nil != err {
		return 0, err
	}
	if 0 == len(roomIds) {
		return 0, fault.NoRoomsAvailable
	}

	roomId := roomIds[0]
	if err := join(roomId, digest, caller); nil != err {
		return 0, err
	}
	return roomId, nil
}

// must hold the lock
func join(roomId roomrecord.RoomId, app roomrecord.AppDigest, caller identity.ID) error {
	room, err := fetchAppRoom(app, roomId)
	if nil != err {
		return err
	}

	if room.IsClosed {
		return fault.RoomClosed
	}
	if room.IsFull() {
		return fault.PlayerLimitExceeded
	}
	if room.IsMember(caller) {
		return fault.AlreadyJoined
	}
	if room.IsBanned(caller) {
		return fault.PlayerBanned
	}
	if _, ok := appindex.Current(app, caller); ok {
		return fault.AlreadyInRoom
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	room.AddPlayer(caller)

	return settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())
		appindex.SetCurrent(trx, app, caller, roomId)
	})
}
