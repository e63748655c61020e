// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lobby

import (
	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/appindex"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

// rooms per reindex transaction
const reindexBatchSize = 100

// Reindex - rebuild the index database from the room records
//
// called during start up when storage reports a dropped index
// database, before the lobby accepts operations.  The index pools are
// derivable: available set and current room entries and owner lists
// are all reconstructed by walking the canonical room records in id
// order.  No tracker is attached, rebuilt index bytes were already
// charged when the rooms were written.
func Reindex() error {
	log := logger.New("reindex")
	log.Info("rebuilding index database…")

	cursor := storage.Pool.Rooms.NewFetchCursor()
	total := 0
	for {
		elements, err := cursor.Fetch(reindexBatchSize)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break
		}

		trx, err := storage.NewDBTransaction(nil)
		if nil != err {
			return err
		}

		for _, element := range elements {
			room, err := roomrecord.Packed(element.Value).Unpack()
			if nil != err {
				trx.Abort()
				return err
			}

			if !room.IsClosed && !room.IsHidden {
				appindex.MarkAvailable(trx, room.App, room.RoomId)
			}
			appindex.AppendOwned(trx, room.App, room.Owner, room.RoomId)
			for _, player := range room.Players {
				appindex.SetCurrent(trx, room.App, player, room.RoomId)
			}
			total += 1
		}

		if err := trx.Commit(); nil != err {
			return err
		}
	}

	log.Infof("reindexed %d rooms", total)
	return storage.ReindexDone()
}
