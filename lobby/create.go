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

// CreateRoom - create a room with the owner pre-seeded as sole player
//
// the attached payment is credited to the owner's account first; a
// previously unknown owner must attach at least the registration
// minimum.  Returns the new room id; ids are strictly increasing and
// never reused, a rejected create leaves the sequence unchanged.
func CreateRoom(config *roomrecord.RoomConfig, owner identity.ID, payment uint64) (roomrecord.RoomId, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	if err := config.Validate(); nil != err {
		return 0, err
	}

	account, err := ledger.GetOrCreate(owner, payment)
	if nil != err {
		return 0, err
	}

	app := config.App.Digest()

	lastId, _ := storage.Pool.Sequence.GetN(sequenceKey)
	roomId := roomrecord.RoomId(lastId + 1)

	room := roomrecord.NewRoom(roomId, config, owner)

	err = settleAndCommit(owner, account, func(trx storage.Transaction) {
		trx.PutN(storage.Pool.Sequence, sequenceKey, uint64(roomId))
		trx.Put(storage.Pool.Rooms, roomId.Bytes(), room.Pack())

		// hidden rooms are excluded from discovery
		if !room.IsHidden {
			appindex.MarkAvailable(trx, app, roomId)
		}
		appindex.SetCurrent(trx, app, owner, roomId)
		appindex.AppendOwned(trx, app, owner, roomId)
	})
	if nil != err {
		return 0, err
	}

	globalData.log.Infof("created room: %d  app: %q  owner: %q", roomId, config.App, owner)
	return roomId, nil
}
