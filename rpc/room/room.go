// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package room

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/lobby"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/rpc/ratelimit"
)

// Room - type for the RPC
//
// all mutating room calls are metered against the owner's storage
// balance, so every argument block carries the caller identity and,
// where a payment is accepted, an attached deposit
type Room struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitRoom = 200
	rateBurstRoom = 100
)

// New - create a new instance of the room service
func New(log *logger.L) *Room {
	return &Room{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitRoom, rateBurstRoom),
	}
}

// Room create
// -----------

// CreateArguments - arguments for RPC
type CreateArguments struct {
	Caller      identity.ID `json:"caller"`
	Payment     uint64      `json:"payment,string"`
	App         string      `json:"app"`
	Name        string      `json:"name"`
	PlayerLimit uint64      `json:"playerLimit"`
	IsHidden    bool        `json:"isHidden"`
	Extra       string      `json:"extra,omitempty"`
}

// CreateReply - result from create RPC
type CreateReply struct {
	RoomId uint64 `json:"roomId,string"`
}

// Create - create a new room owned and occupied by the caller
func (room *Room) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Create: %+v", arguments)

	config := roomrecord.RoomConfig{
		App:         roomrecord.AppName(arguments.App),
		Name:        arguments.Name,
		PlayerLimit: arguments.PlayerLimit,
		IsHidden:    arguments.IsHidden,
		Extra:       arguments.Extra,
	}

	roomId, err := lobby.CreateRoom(&config, arguments.Caller, arguments.Payment)
	if nil != err {
		return err
	}

	reply.RoomId = uint64(roomId)
	return nil
}

// membership
// ----------

// MemberArguments - arguments for the join/leave RPCs
type MemberArguments struct {
	Caller identity.ID `json:"caller"`
	App    string      `json:"app"`
	RoomId uint64      `json:"roomId,string"`
}

// MemberReply - result echoing the affected room
type MemberReply struct {
	RoomId uint64 `json:"roomId,string"`
}

// Join - join a specific room
func (room *Room) Join(arguments *MemberArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Join: %+v", arguments)

	err := lobby.Join(roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// RandomJoinArguments - arguments for RPC
type RandomJoinArguments struct {
	Caller identity.ID `json:"caller"`
	App    string      `json:"app"`
}

// RandomJoin - join a randomly selected available room of an app
func (room *Room) RandomJoin(arguments *RandomJoinArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.RandomJoin: %+v", arguments)

	roomId, err := lobby.RandomJoin(roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = uint64(roomId)
	return nil
}

// Leave - leave a room the caller is a member of
func (room *Room) Leave(arguments *MemberArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Leave: %+v", arguments)

	err := lobby.Leave(roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// owner operations
// ----------------

// Open - reopen a closed room for joining
func (room *Room) Open(arguments *MemberArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Open: %+v", arguments)

	err := lobby.Open(roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// Close - close a room for joining and eject all other players
func (room *Room) Close(arguments *MemberArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Close: %+v", arguments)

	err := lobby.Close(roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// Remove - delete a room and credit its storage back to the owner
func (room *Room) Remove(arguments *MemberArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Remove: %+v", arguments)

	err := lobby.Remove(roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// KickArguments - arguments for RPC
type KickArguments struct {
	Caller identity.ID `json:"caller"`
	Target identity.ID `json:"target"`
	App    string      `json:"app"`
	RoomId uint64      `json:"roomId,string"`
}

// Kick - eject a player from an owned room and ban rejoining
func (room *Room) Kick(arguments *KickArguments, reply *MemberReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Kick: %+v", arguments)

	err := lobby.KickAndBan(arguments.Target, roomrecord.RoomId(arguments.RoomId), roomrecord.AppName(arguments.App), arguments.Caller)
	if nil != err {
		return err
	}

	reply.RoomId = arguments.RoomId
	return nil
}

// account funding
// ---------------

// DepositArguments - arguments for RPC
type DepositArguments struct {
	Caller  identity.ID `json:"caller"`
	Payment uint64      `json:"payment,string"`
}

// DepositReply - result from deposit RPC
type DepositReply struct {
	Balance   uint64 `json:"balance,string"`
	UsedBytes uint64 `json:"usedBytes,string"`
}

// Deposit - add storage balance to the caller's account
func (room *Room) Deposit(arguments *DepositArguments, reply *DepositReply) error {
	if err := ratelimit.Limit(room.Limiter); nil != err {
		return err
	}

	log := room.Log
	log.Infof("Room.Deposit: caller: %s  payment: %d", arguments.Caller, arguments.Payment)

	account, err := lobby.Deposit(arguments.Caller, arguments.Payment)
	if nil != err {
		return err
	}

	reply.Balance = account.Balance
	reply.UsedBytes = account.UsedBytes
	return nil
}
