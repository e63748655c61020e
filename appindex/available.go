// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package appindex

import (
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// presence marker for set style pools
var presentValue = []byte{0x01}

func availableKey(app roomrecord.AppDigest, roomId roomrecord.RoomId) []byte {
	return append(app.Bytes(), roomId.Bytes()...)
}

// MarkAvailable - insert a room into the app's available set
//
// inserting an already present room is a no-op so the count stays
// consistent with the set
func MarkAvailable(trx storage.Transaction, app roomrecord.AppDigest, roomId roomrecord.RoomId) {
	key := availableKey(app, roomId)
	if trx.Has(storage.Pool.AvailableRooms, key) {
		return
	}
	trx.Put(storage.Pool.AvailableRooms, key, presentValue)

	// the counter is shared by every owner in the app so its
	// record bytes stay outside the caller's accounting bracket
	count, _ := trx.GetN(storage.Pool.AvailableCount, app.Bytes())
	trx.PutNUnmetered(storage.Pool.AvailableCount, app.Bytes(), count+1)
}

// UnmarkAvailable - remove a room from the app's available set
func UnmarkAvailable(trx storage.Transaction, app roomrecord.AppDigest, roomId roomrecord.RoomId) {
	key := availableKey(app, roomId)
	if !trx.Has(storage.Pool.AvailableRooms, key) {
		return
	}
	trx.Delete(storage.Pool.AvailableRooms, key)

	count, _ := trx.GetN(storage.Pool.AvailableCount, app.Bytes())
	if count <= 1 {
		trx.DeleteUnmetered(storage.Pool.AvailableCount, app.Bytes())
	} else {
		trx.PutNUnmetered(storage.Pool.AvailableCount, app.Bytes(), count-1)
	}
}

// IsAvailable - membership check on the available set
func IsAvailable(app roomrecord.AppDigest, roomId roomrecord.RoomId) bool {
	return storage.Pool.AvailableRooms.Has(availableKey(app, roomId))
}

// CountAvailable - size of the app's available set
func CountAvailable(app roomrecord.AppDigest) uint64 {
	count, _ := storage.Pool.AvailableCount.GetN(app.Bytes())
	return count
}

// ListAvailable - room ids of the available set in stable key order
func ListAvailable(app roomrecord.AppDigest, offset uint64, limit int) ([]roomrecord.RoomId, error) {
	if limit <= 0 || offset > maximumListOffset {
		return nil, nil
	}

	cursor := storage.Pool.AvailableRooms.NewFetchCursorRange(app.Bytes())
	elements, err := cursor.Fetch(int(offset) + limit)
	if nil != err {
		return nil, err
	}
	if uint64(len(elements)) <= offset {
		return nil, nil
	}
	elements = elements[offset:]

	roomIds := make([]roomrecord.RoomId, 0, len(elements))
	for _, element := range elements {
		// element key is app ++ roomId
		roomId, err := roomrecord.RoomIdFromBytes(element.Key[roomrecord.AppDigestLength:])
		if nil != err {
			return nil, err
		}
		roomIds = append(roomIds, roomId)
	}
	return roomIds, nil
}
