// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roomrecord

import (
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/util"
)

// Packed - a packed room record
type Packed []byte

// record flag bits
const (
	flagHidden = 0x01
	flagClosed = 0x02
	flagExtra  = 0x04
)

// Pack - serialize a room
//
// layout: flags ++ roomId ++ appDigest ++ playerLimit ++ name ++
// owner ++ players ++ banned ++ extra (only if flag set); strings and
// lists are Varint64 length prefixed
func (room *Room) Pack() Packed {
	flags := byte(0)
	if room.IsHidden {
		flags |= flagHidden
	}
	if room.IsClosed {
		flags |= flagClosed
	}
	if 0 != len(room.Extra) {
		flags |= flagExtra
	}

	message := Packed{flags}
	message = append(message, room.RoomId.Bytes()...)
	message = append(message, room.App.Bytes()...)
	message = appendUint64(message, room.PlayerLimit)
	message = appendString(message, room.Name)
	message = appendString(message, string(room.Owner))
	message = appendIdentities(message, room.Players)
	message = appendIdentities(message, room.Banned)
	if 0 != flags&flagExtra {
		message = appendString(message, room.Extra)
	}
	return message
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an identity list to a buffer
//
// the list is prefixed by Varint64(count)
func appendIdentities(buffer Packed, list []identity.ID) Packed {
	buffer = appendUint64(buffer, uint64(len(list)))
	for _, id := range list {
		buffer = appendString(buffer, string(id))
	}
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
