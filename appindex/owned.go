// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package appindex

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// from storage/doc.go:
//
// owner list discipline:
//   OwnerNextCount  app ++ owner           - next position for appending
//   OwnerList       app ++ owner ++ count  - room id at that position
//   OwnerRoomIndex  app ++ owner ++ roomId - position, for delete on removal

func ownerKey(app roomrecord.AppDigest, owner identity.ID) []byte {
	return append(app.Bytes(), owner.Bytes()...)
}

// AppendOwned - add a room to the end of an owner's room list
func AppendOwned(trx storage.Transaction, app roomrecord.AppDigest, owner identity.ID, roomId roomrecord.RoomId) {
	nKey := ownerKey(app, owner)
	count, _ := trx.GetN(storage.Pool.OwnerNextCount, nKey)

	countBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(countBytes, count)

	trx.PutN(storage.Pool.OwnerNextCount, nKey, count+1)
	trx.Put(storage.Pool.OwnerList, append(nKey, countBytes...), roomId.Bytes())
	trx.Put(storage.Pool.OwnerRoomIndex, append(nKey, roomId.Bytes()...), countBytes)
}

// RemoveOwned - delete a room from an owner's room list
//
// positions of the remaining rooms are unchanged, the list tolerates
// holes; a missing position record means the index is corrupt
func RemoveOwned(trx storage.Transaction, app roomrecord.AppDigest, owner identity.ID, roomId roomrecord.RoomId) {
	nKey := ownerKey(app, owner)

	dKey := append(nKey, roomId.Bytes()...)
	countBytes := trx.Get(storage.Pool.OwnerRoomIndex, dKey)
	if nil == countBytes {
		logger.Criticalf("appindex.RemoveOwned: owner: %q  room id: %d", owner, roomId)
		logger.Panic("appindex.RemoveOwned: OwnerRoomIndex database corrupt")
	}

	trx.Delete(storage.Pool.OwnerList, append(nKey, countBytes...))
	trx.Delete(storage.Pool.OwnerRoomIndex, dKey)
}

// ListOwned - room ids owned by an account, in append order
func ListOwned(app roomrecord.AppDigest, owner identity.ID, offset uint64, limit int) ([]roomrecord.RoomId, error) {
	if limit <= 0 || offset > maximumListOffset {
		return nil, nil
	}

	cursor := storage.Pool.OwnerList.NewFetchCursorRange(ownerKey(app, owner))
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
		roomId, err := roomrecord.RoomIdFromBytes(element.Value)
		if nil != err {
			return nil, err
		}
		roomIds = append(roomIds, roomId)
	}
	return roomIds, nil
}
