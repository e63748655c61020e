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
)

// queries never charge storage and take no payment

// GetRoom - direct lookup by id
//
// hidden rooms are visible by id, but the room must belong to the
// given app
func GetRoom(app roomrecord.AppName, roomId roomrecord.RoomId) (*roomrecord.Room, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return nil, err
	}

	return fetchAppRoom(app.Digest(), roomId)
}

// GetAccountRoom - the room an account is an active participant of
//
// returns nil without error when the account is not in a room
func GetAccountRoom(app roomrecord.AppName, id identity.ID) (*roomrecord.Room, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return nil, err
	}
	if err := id.Validate(); nil != err {
		return nil, err
	}

	roomId, ok := appindex.Current(app.Digest(), id)
	if !ok {
		return nil, nil
	}
	return fetchRoom(roomId)
}

// ListAppRooms - page through the app's available rooms
//
// hidden rooms never appear, they are not in the available set
func ListAppRooms(app roomrecord.AppName, offset uint64, limit int) ([]*roomrecord.Room, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return nil, err
	}

	roomIds, err := appindex.ListAvailable(app.Digest(), offset, limit)
	if nil != err {
		return nil, err
	}
	return fetchRooms(roomIds)
}

// ListOwnerRooms - page through the rooms an account owns in an app
func ListOwnerRooms(app roomrecord.AppName, owner identity.ID, offset uint64, limit int) ([]*roomrecord.Room, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return nil, err
	}
	if err := owner.Validate(); nil != err {
		return nil, err
	}

	roomIds, err := appindex.ListOwned(app.Digest(), owner, offset, limit)
	if nil != err {
		return nil, err
	}
	return fetchRooms(roomIds)
}

// NumberOfAvailableRooms - size of the app's available set
func NumberOfAvailableRooms(app roomrecord.AppName) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if err := app.Validate(); nil != err {
		return 0, err
	}

	return appindex.CountAvailable(app.Digest()), nil
}

// Balance - storage balance and usage of an account
func Balance(id identity.ID) (*ledger.Account, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if err := id.Validate(); nil != err {
		return nil, err
	}

	return ledger.Get(id)
}

// resolve index entries to full rooms
func fetchRooms(roomIds []roomrecord.RoomId) ([]*roomrecord.Room, error) {
	rooms := make([]*roomrecord.Room, 0, len(roomIds))
	for _, roomId := range roomIds {
		room, err := fetchRoom(roomId)
		if nil != err {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
