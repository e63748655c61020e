// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package app

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/lobby"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/rpc/ratelimit"
)

// App - type for the RPC
type App struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	// MaximumListCount - upper bound on rooms per list request
	MaximumListCount = 100

	rateLimitApp = 200
	rateBurstApp = 100
)

// New - create a new instance of the app query service
func New(log *logger.L) *App {
	return &App{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitApp, rateBurstApp),
	}
}

// RoomInfo - wire form of a room record
type RoomInfo struct {
	RoomId      uint64        `json:"roomId,string"`
	Name        string        `json:"name"`
	Owner       identity.ID   `json:"owner"`
	Players     []identity.ID `json:"players"`
	Banned      []identity.ID `json:"banned,omitempty"`
	PlayerLimit uint64        `json:"playerLimit"`
	IsHidden    bool          `json:"isHidden"`
	IsClosed    bool          `json:"isClosed"`
	Extra       string        `json:"extra,omitempty"`
}

func roomInfo(room *roomrecord.Room) RoomInfo {
	return RoomInfo{
		RoomId:      uint64(room.RoomId),
		Name:        room.Name,
		Owner:       room.Owner,
		Players:     room.Players,
		Banned:      room.Banned,
		PlayerLimit: room.PlayerLimit,
		IsHidden:    room.IsHidden,
		IsClosed:    room.IsClosed,
		Extra:       room.Extra,
	}
}

// single room query
// -----------------

// GetArguments - arguments for RPC
type GetArguments struct {
	App    string `json:"app"`
	RoomId uint64 `json:"roomId,string"`
}

// GetReply - result from get RPC
type GetReply struct {
	Room RoomInfo `json:"room"`
}

// Get - fetch one room of an app by id
func (app *App) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(app.Limiter); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.Get: %+v", arguments)

	room, err := lobby.GetRoom(roomrecord.AppName(arguments.App), roomrecord.RoomId(arguments.RoomId))
	if nil != err {
		return err
	}

	reply.Room = roomInfo(room)
	return nil
}

// AccountRoomArguments - arguments for RPC
type AccountRoomArguments struct {
	App      string      `json:"app"`
	Identity identity.ID `json:"identity"`
}

// AccountRoomReply - result from account room RPC
type AccountRoomReply struct {
	InRoom bool      `json:"inRoom"`
	Room   *RoomInfo `json:"room,omitempty"`
}

// AccountRoom - fetch the room an identity currently occupies, if any
func (app *App) AccountRoom(arguments *AccountRoomArguments, reply *AccountRoomReply) error {
	if err := ratelimit.Limit(app.Limiter); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.AccountRoom: %+v", arguments)

	room, err := lobby.GetAccountRoom(roomrecord.AppName(arguments.App), arguments.Identity)
	if nil != err {
		return err
	}

	if nil != room {
		info := roomInfo(room)
		reply.InRoom = true
		reply.Room = &info
	}
	return nil
}

// room listing
// ------------

// ListArguments - arguments for RPC
type ListArguments struct {
	App   string `json:"app"`
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - result from list RPC
type ListReply struct {
	Rooms []RoomInfo `json:"rooms"`
	Next  uint64     `json:"next,string"`
}

// List - page through the available rooms of an app
func (app *App) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.LimitN(app.Limiter, arguments.Count, MaximumListCount); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.List: %+v", arguments)

	rooms, err := lobby.ListAppRooms(roomrecord.AppName(arguments.App), arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Rooms = make([]RoomInfo, len(rooms))
	for i, room := range rooms {
		reply.Rooms[i] = roomInfo(room)
	}
	reply.Next = arguments.Start + uint64(len(rooms))
	return nil
}

// OwnerListArguments - arguments for RPC
type OwnerListArguments struct {
	App   string      `json:"app"`
	Owner identity.ID `json:"owner"`
	Start uint64      `json:"start,string"`
	Count int         `json:"count"`
}

// OwnerList - page through the rooms an identity owns in an app
func (app *App) OwnerList(arguments *OwnerListArguments, reply *ListReply) error {
	if err := ratelimit.LimitN(app.Limiter, arguments.Count, MaximumListCount); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.OwnerList: %+v", arguments)

	rooms, err := lobby.ListOwnerRooms(roomrecord.AppName(arguments.App), arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Rooms = make([]RoomInfo, len(rooms))
	for i, room := range rooms {
		reply.Rooms[i] = roomInfo(room)
	}
	reply.Next = arguments.Start + uint64(len(rooms))
	return nil
}

// counters and balances
// ---------------------

// CountArguments - arguments for RPC
type CountArguments struct {
	App string `json:"app"`
}

// CountReply - result from count RPC
type CountReply struct {
	Available uint64 `json:"available,string"`
}

// Count - number of rooms currently open for joining in an app
func (app *App) Count(arguments *CountArguments, reply *CountReply) error {
	if err := ratelimit.Limit(app.Limiter); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.Count: %+v", arguments)

	n, err := lobby.NumberOfAvailableRooms(roomrecord.AppName(arguments.App))
	if nil != err {
		return err
	}

	reply.Available = n
	return nil
}

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Identity identity.ID `json:"identity"`
}

// BalanceReply - result from balance RPC
type BalanceReply struct {
	Balance   uint64 `json:"balance,string"`
	UsedBytes uint64 `json:"usedBytes,string"`
}

// Balance - storage account state for an identity
func (app *App) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(app.Limiter); nil != err {
		return err
	}

	log := app.Log
	log.Infof("App.Balance: %+v", arguments)

	account, err := lobby.Balance(arguments.Identity)
	if nil != err {
		return err
	}

	reply.Balance = account.Balance
	reply.UsedBytes = account.UsedBytes
	return nil
}
