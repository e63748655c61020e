// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package roomrecord - the canonical room record and its byte level
// representation
//
// Records are stored packed; the App Index Layer only ever references
// a room by id so the packed record is the single copy of the room
// content.
package roomrecord

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
)

// limits on the free form fields
const (
	MinimumNameLength = 1
	MaximumNameLength = 128
	MaximumAppLength  = 128
	MaximumExtraBytes = 1024
)

// AppDigestLength - byte length of an app namespace digest
const AppDigestLength = 32

// RoomIdLength - byte length of a packed room id
const RoomIdLength = 8

// RoomId - unique room identifier, monotonically assigned, never
// reused even after removal
type RoomId uint64

// Bytes - big endian key material for the storage pools
func (roomId RoomId) Bytes() []byte {
	buffer := make([]byte, RoomIdLength)
	binary.BigEndian.PutUint64(buffer, uint64(roomId))
	return buffer
}

// RoomIdFromBytes - reverse of RoomId.Bytes
func RoomIdFromBytes(buffer []byte) (RoomId, error) {
	if RoomIdLength != len(buffer) {
		return 0, fault.RoomNotFound
	}
	return RoomId(binary.BigEndian.Uint64(buffer)), nil
}

// AppDigest - fixed length digest of an app name, the key prefix
// component of every per-app index pool
type AppDigest [AppDigestLength]byte

// Bytes - key material for the storage pools
func (d AppDigest) Bytes() []byte {
	return d[:]
}

// AppName - application namespace, created implicitly on first use
type AppName string

// Validate - check an app name is acceptable
func (app AppName) Validate() error {
	if 0 == len(app) || len(app) > MaximumAppLength {
		return fault.InvalidAppName
	}
	return nil
}

// Digest - the index key component for this app
func (app AppName) Digest() AppDigest {
	return AppDigest(sha3.Sum256([]byte(app)))
}

// RoomConfig - caller supplied parameters for room creation
type RoomConfig struct {
	App         AppName
	Name        string
	IsHidden    bool
	PlayerLimit uint64
	Extra       string
}

// Validate - check the creation parameters
func (config *RoomConfig) Validate() error {
	if err := config.App.Validate(); nil != err {
		return err
	}
	if len(config.Name) < MinimumNameLength || len(config.Name) > MaximumNameLength {
		return fault.InvalidRoomName
	}
	if config.PlayerLimit < 1 {
		return fault.InvalidPlayerLimit
	}
	if len(config.Extra) > MaximumExtraBytes {
		return fault.InvalidRoomName
	}
	return nil
}

// Room - the canonical room state
//
// Owner is always Players[0] at creation and is only removable by
// room removal; Players and Banned stay disjoint once a ban takes
// effect
type Room struct {
	RoomId      RoomId
	App         AppDigest
	Name        string
	Owner       identity.ID
	Players     []identity.ID
	Banned      []identity.ID
	PlayerLimit uint64
	IsHidden    bool
	IsClosed    bool
	Extra       string
}

// NewRoom - build the initial state for a freshly created room with
// the owner pre-seeded as sole player
func NewRoom(roomId RoomId, config *RoomConfig, owner identity.ID) *Room {
	return &Room{
		RoomId:      roomId,
		App:         config.App.Digest(),
		Name:        config.Name,
		Owner:       owner,
		Players:     []identity.ID{owner},
		Banned:      nil,
		PlayerLimit: config.PlayerLimit,
		IsHidden:    config.IsHidden,
		IsClosed:    false,
		Extra:       config.Extra,
	}
}

// IsOwner - check an identity against the room owner
func (room *Room) IsOwner(id identity.ID) bool {
	return room.Owner == id
}

// IsMember - check whether an identity is a current player
func (room *Room) IsMember(id identity.ID) bool {
	for _, player := range room.Players {
		if player == id {
			return true
		}
	}
	return false
}

// IsBanned - check whether an identity is banned from the room
func (room *Room) IsBanned(id identity.ID) bool {
	for _, banned := range room.Banned {
		if banned == id {
			return true
		}
	}
	return false
}

// IsFull - check the player limit
func (room *Room) IsFull() bool {
	return uint64(len(room.Players)) >= room.PlayerLimit
}

// AddPlayer - append a player
//
// validation is the caller's job, this only mutates state
func (room *Room) AddPlayer(id identity.ID) {
	room.Players = append(room.Players, id)
}

// RemovePlayer - unordered swap-delete of a player
//
// returns false if the identity is not a member
func (room *Room) RemovePlayer(id identity.ID) bool {
	for i, player := range room.Players {
		if player == id {
			last := len(room.Players) - 1
			room.Players[i] = room.Players[last]
			room.Players = room.Players[:last]
			return true
		}
	}
	return false
}

// Ban - add an identity to the banned set
//
// banning an identity that is not a member is allowed, the ban then
// blocks a future join
func (room *Room) Ban(id identity.ID) {
	if !room.IsBanned(id) {
		room.Banned = append(room.Banned, id)
	}
}
