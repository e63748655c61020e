// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lobby

import (
	"github.com/roomstore/roomd/appindex"
	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/ledger"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// authorize an owner-only transition
func fetchOwnedRoom(app roomrecord.AppDigest, roomId roomrecord.RoomId, caller identity.ID) (*roomrecord.Room, error) {
	room, err := fetchAppRoom(app, roomId)
	if nil != err {
		return nil, err
	}
	if !room.IsOwner(caller) {
		return nil, fault.NotRoomOwner
	}
	return room, nil
}

// Open - owner-only, make a closed room joinable again
func Open(roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
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

	digest := app.Digest()

	room, err := fetchOwnedRoom(digest, roomId, caller)
	if nil != err {
		return err
	}
	if !room.IsClosed {
		return fault.RoomNotClosed
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	room.IsClosed = false

	return settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())
		if !room.IsHidden {
			appindex.MarkAvailable(trx, digest, roomId)
		}
	})
}

// Close - owner-only, stop joins and eject every other player
//
// the room drops out of the available set and every non-owner member
// loses their seat and their current room entry, leaving the owner as
// sole player
func Close(roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
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

	digest := app.Digest()

	room, err := fetchOwnedRoom(digest, roomId, caller)
	if nil != err {
		return err
	}
	if room.IsClosed {
		return fault.RoomClosed
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	ejected := make([]identity.ID, 0, len(room.Players))
	for _, player := range room.Players {
		if player != room.Owner {
			ejected = append(ejected, player)
		}
	}

	room.IsClosed = true
	room.Players = []identity.ID{room.Owner}

	return settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())
		appindex.UnmarkAvailable(trx, digest, roomId)
		for _, player := range ejected {
			appindex.ClearCurrent(trx, digest, player)
		}
	})
}

// Remove - owner-only, delete the room and purge every reference
//
// purge order is fixed: room record, available set, owner list, then
// each member's current room entry; room ids are never reused
func Remove(roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
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

	digest := app.Digest()

	room, err := fetchOwnedRoom(digest, roomId, caller)
	if nil != err {
		return err
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	err = settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Delete(storage.Pool.Rooms, roomId.Bytes())
		appindex.UnmarkAvailable(trx, digest, roomId)
		appindex.RemoveOwned(trx, digest, room.Owner, roomId)
		for _, player := range room.Players {
			appindex.ClearCurrent(trx, digest, player)
		}
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("removed room: %d  owner: %q", roomId, room.Owner)
	return nil
}

// KickAndBan - owner-only, eject a player and bar them from rejoining
//
// the target need not be a member, a pre-ban blocks a future join;
// the owner cannot be banned
func KickAndBan(target identity.ID, roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
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
	if err := target.Validate(); nil != err {
		return err
	}

	digest := app.Digest()

	room, err := fetchOwnedRoom(digest, roomId, caller)
	if nil != err {
		return err
	}
	if room.IsClosed {
		return fault.RoomClosed
	}
	if room.IsOwner(target) {
		return fault.OwnerCannotBeBanned
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	wasMember := room.RemovePlayer(target)
	room.Ban(target)

	return settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())
		if wasMember {
			appindex.ClearCurrent(trx, digest, target)
		}
	})
}
