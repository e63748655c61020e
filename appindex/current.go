// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package appindex

import (
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// pagination bound, offsets beyond this cannot reference real data
const maximumListOffset = 1 << 30

func currentKey(app roomrecord.AppDigest, id identity.ID) []byte {
	return append(app.Bytes(), id.Bytes()...)
}

// SetCurrent - record an account as active participant of a room
//
// an account is in at most one room per app, the previous entry is
// simply overwritten
func SetCurrent(trx storage.Transaction, app roomrecord.AppDigest, id identity.ID, roomId roomrecord.RoomId) {
	trx.Put(storage.Pool.CurrentRoom, currentKey(app, id), roomId.Bytes())
}

// ClearCurrent - drop an account's current room entry
func ClearCurrent(trx storage.Transaction, app roomrecord.AppDigest, id identity.ID) {
	trx.Delete(storage.Pool.CurrentRoom, currentKey(app, id))
}

// Current - the room an account is currently in, if any
func Current(app roomrecord.AppDigest, id identity.ID) (roomrecord.RoomId, bool) {
	buffer := storage.Pool.CurrentRoom.Get(currentKey(app, id))
	if nil == buffer {
		return 0, false
	}
	roomId, err := roomrecord.RoomIdFromBytes(buffer)
	if nil != err {
		return 0, false
	}
	return roomId, true
}
