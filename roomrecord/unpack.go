// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roomrecord

import (
	"encoding/binary"

	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/util"
)

// Unpack - turn a packed byte slice back into a room
//
// any truncated or oversize field fails with NotRoomRecord
func (record Packed) Unpack() (*Room, error) {
	if len(record) < 1+RoomIdLength+AppDigestLength {
		return nil, fault.NotRoomRecord
	}

	flags := record[0]
	n := 1

	roomId := RoomId(binary.BigEndian.Uint64(record[n : n+RoomIdLength]))
	n += RoomIdLength

	var app AppDigest
	copy(app[:], record[n:n+AppDigestLength])
	n += AppDigestLength

	playerLimit, playerLimitLength := util.FromVarint64(record[n:])
	if 0 == playerLimitLength {
		return nil, fault.NotRoomRecord
	}
	n += playerLimitLength

	name, nameLength := unpackString(record[n:], MaximumNameLength)
	if 0 == nameLength {
		return nil, fault.NotRoomRecord
	}
	n += nameLength

	owner, ownerLength := unpackString(record[n:], identity.MaximumLength)
	if 0 == ownerLength {
		return nil, fault.NotRoomRecord
	}
	n += ownerLength

	players, playersLength := unpackIdentities(record[n:])
	if 0 == playersLength {
		return nil, fault.NotRoomRecord
	}
	n += playersLength

	banned, bannedLength := unpackIdentities(record[n:])
	if 0 == bannedLength {
		return nil, fault.NotRoomRecord
	}
	n += bannedLength

	extra := ""
	if 0 != flags&flagExtra {
		var extraLength int
		extra, extraLength = unpackString(record[n:], MaximumExtraBytes)
		if 0 == extraLength {
			return nil, fault.NotRoomRecord
		}
		n += extraLength
	}

	if n != len(record) {
		return nil, fault.NotRoomRecord
	}

	return &Room{
		RoomId:      roomId,
		App:         app,
		Name:        name,
		Owner:       identity.ID(owner),
		Players:     players,
		Banned:      banned,
		PlayerLimit: playerLimit,
		IsHidden:    0 != flags&flagHidden,
		IsClosed:    0 != flags&flagClosed,
		Extra:       extra,
	}, nil
}

// read a Varint64 length prefixed string
//
// returns the total bytes consumed, zero on truncation or a length
// beyond the limit
func unpackString(buffer []byte, limit int) (string, int) {
	length, offset := util.FromVarint64(buffer)
	if 0 == offset || length > uint64(limit) {
		return "", 0
	}
	end := offset + int(length)
	if end > len(buffer) {
		return "", 0
	}
	return string(buffer[offset:end]), end
}

// read a Varint64 count prefixed identity list
func unpackIdentities(buffer []byte) ([]identity.ID, int) {
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, 0
	}
	if count > uint64(len(buffer)) { // one byte minimum per entry
		return nil, 0
	}

	list := make([]identity.ID, 0, count)
	for i := uint64(0); i < count; i += 1 {
		id, idLength := unpackString(buffer[n:], identity.MaximumLength)
		if 0 == idLength {
			return nil, 0
		}
		n += idLength
		list = append(list, identity.ID(id))
	}
	return list, n
}
