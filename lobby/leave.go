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

// Leave - withdraw from a room
//
// player order is not preserved, removal is an unordered swap-delete;
// the freed bytes are credited back to the room owner.  The owner
// slot is only removable by Remove, so the owner cannot leave.
func Leave(roomId roomrecord.RoomId, app roomrecord.AppName, caller identity.ID) error {
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

	room, err := fetchAppRoom(digest, roomId)
	if nil != err {
		return err
	}

	// a closed room has already ejected everyone
	if room.IsClosed {
		return fault.RoomClosed
	}
	if room.IsOwner(caller) {
		return fault.OwnerCannotLeave
	}
	if !room.IsMember(caller) {
		return fault.NotAMember
	}

	account, err := ledger.Get(room.Owner)
	if nil != err {
		return err
	}

	room.RemovePlayer(caller)

	return settleAndCommit(room.Owner, account, func(trx storage.Transaction) {
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())
		appindex.ClearCurrent(trx, digest, caller)
	})
}
