// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lobby_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/roomstore/roomd/entropy"
	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/ledger"
	"github.com/roomstore/roomd/lobby"
	"github.com/roomstore/roomd/roomrecord"
	"github.com/roomstore/roomd/storage"
)

const (
	databaseFileName = "test"
	testingDirName   = "testing"

	testApp = roomrecord.AppName("space-battle")
)

func removeFiles() {
	os.RemoveAll(testingDirName)
	os.RemoveAll(databaseFileName + "-data.leveldb")
	os.RemoveAll(databaseFileName + "-index.leveldb")
}

func setup(t *testing.T) {
	removeFiles()

	_ = os.Mkdir(testingDirName, 0700)
	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	_, err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = lobby.Initialise(entropy.Fixed(0))
	if nil != err {
		t.Fatalf("lobby initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	_ = lobby.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

var testConfig = roomrecord.RoomConfig{
	App:         testApp,
	Name:        "deathmatch arena",
	IsHidden:    false,
	PlayerLimit: 4,
	Extra:       `{"map":"asteroid"}`,
}

// create a funded room owned by alice
func createTestRoom(t *testing.T, config roomrecord.RoomConfig) roomrecord.RoomId {
	roomId, err := lobby.CreateRoom(&config, "alice", ledger.MinimumBalance)
	if nil != err {
		t.Fatalf("create room error: %s", err)
	}
	return roomId
}

func TestCreateRoom(t *testing.T) {
	setup(t)
	defer teardown(t)

	// an unfunded create must not consume a room id
	_, err := lobby.CreateRoom(&testConfig, "alice", ledger.MinimumBalance-1)
	assert.Equal(t, fault.InsufficientDeposit, err, "underfunded create")

	roomId := createTestRoom(t, testConfig)
	assert.Equal(t, roomrecord.RoomId(1), roomId, "first room id")

	room, err := lobby.GetRoom(testApp, roomId)
	assert.Nil(t, err, "get room")
	assert.Equal(t, testConfig.Name, room.Name, "name")
	assert.Equal(t, identity.ID("alice"), room.Owner, "owner")
	assert.Equal(t, []identity.ID{"alice"}, room.Players, "players")
	assert.False(t, room.IsClosed, "closed")

	// owner is an active participant of the new room
	current, err := lobby.GetAccountRoom(testApp, "alice")
	assert.Nil(t, err, "account room")
	assert.Equal(t, roomId, current.RoomId, "current room")

	// room is discoverable
	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(1), n, "available count")

	owned, err := lobby.ListOwnerRooms(testApp, "alice", 0, 10)
	assert.Nil(t, err, "owner rooms")
	assert.Equal(t, 1, len(owned), "owner room count")

	// creation was metered against the owner
	account, err := lobby.Balance("alice")
	assert.Nil(t, err, "balance")
	assert.True(t, account.UsedBytes > 0, "used bytes")
	assert.Equal(t, uint64(ledger.MinimumBalance), account.Balance, "balance amount")

	// ids are strictly increasing
	second := createTestRoom(t, testConfig)
	assert.Equal(t, roomrecord.RoomId(2), second, "second room id")
}

func TestGetRoomWrongApp(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)

	_, err := lobby.GetRoom("card-game", roomId)
	assert.Equal(t, fault.WrongApp, err, "cross app lookup")

	_, err = lobby.GetRoom(testApp, roomId+1)
	assert.Equal(t, fault.RoomNotFound, err, "unknown id")
}

func TestJoinAndLeave(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)

	before, _ := lobby.Balance("alice")

	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")

	// the joining player's bytes are charged to the room owner
	after, _ := lobby.Balance("alice")
	assert.True(t, after.UsedBytes > before.UsedBytes, "owner charged")

	room, _ := lobby.GetRoom(testApp, roomId)
	assert.Equal(t, 2, len(room.Players), "player count")

	current, _ := lobby.GetAccountRoom(testApp, "bob")
	assert.Equal(t, roomId, current.RoomId, "bob current room")

	assert.Equal(t, fault.AlreadyJoined, lobby.Join(roomId, testApp, "bob"), "rejoin")
	assert.Equal(t, fault.RoomNotFound, lobby.Join(roomId+9, testApp, "carol"), "unknown room")

	// owner slot is only removable by Remove
	assert.Equal(t, fault.OwnerCannotLeave, lobby.Leave(roomId, testApp, "alice"), "owner leave")

	assert.Nil(t, lobby.Leave(roomId, testApp, "bob"), "leave")

	// freed bytes are credited back to the owner
	final, _ := lobby.Balance("alice")
	assert.Equal(t, before.UsedBytes, final.UsedBytes, "owner credited")

	current, err := lobby.GetAccountRoom(testApp, "bob")
	assert.Nil(t, err, "account room")
	assert.Nil(t, current, "bob still current")

	assert.Equal(t, fault.NotAMember, lobby.Leave(roomId, testApp, "bob"), "releave")
}

func TestJoinSecondRoomRejected(t *testing.T) {
	setup(t)
	defer teardown(t)

	first := createTestRoom(t, testConfig)
	second := createTestRoom(t, testConfig)

	assert.Nil(t, lobby.Join(first, testApp, "bob"), "join")
	assert.Equal(t, fault.AlreadyInRoom, lobby.Join(second, testApp, "bob"), "second room")

	// a different app namespace is independent
	otherConfig := testConfig
	otherConfig.App = "card-game"
	otherId, err := lobby.CreateRoom(&otherConfig, "dave", ledger.MinimumBalance)
	assert.Nil(t, err, "other app create")
	assert.Nil(t, lobby.Join(otherId, "card-game", "bob"), "cross app join")
}

func TestPlayerLimit(t *testing.T) {
	setup(t)
	defer teardown(t)

	config := testConfig
	config.PlayerLimit = 2
	roomId := createTestRoom(t, config)

	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")
	assert.Equal(t, fault.PlayerLimitExceeded, lobby.Join(roomId, testApp, "carol"), "limit")
}

func TestRandomJoin(t *testing.T) {
	setup(t)
	defer teardown(t)

	// empty available set is rejected before any pick
	_, err := lobby.RandomJoin(testApp, "bob")
	assert.Equal(t, fault.NoRoomsAvailable, err, "empty set")

	roomId := createTestRoom(t, testConfig)

	got, err := lobby.RandomJoin(testApp, "bob")
	assert.Nil(t, err, "random join")
	assert.Equal(t, roomId, got, "selected room")

	_, err = lobby.RandomJoin(testApp, "bob")
	assert.Equal(t, fault.AlreadyInRoom, err, "second random join")
}

func TestCloseAndOpen(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)
	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")

	assert.Equal(t, fault.NotRoomOwner, lobby.Close(roomId, testApp, "bob"), "non-owner close")
	assert.Nil(t, lobby.Close(roomId, testApp, "alice"), "close")

	// closing ejects every other player
	room, _ := lobby.GetRoom(testApp, roomId)
	assert.True(t, room.IsClosed, "closed flag")
	assert.Equal(t, []identity.ID{"alice"}, room.Players, "players after close")

	current, err := lobby.GetAccountRoom(testApp, "bob")
	assert.Nil(t, err, "account room")
	assert.Nil(t, current, "bob still current")

	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(0), n, "available count")

	assert.Equal(t, fault.RoomClosed, lobby.Join(roomId, testApp, "carol"), "join closed")
	assert.Equal(t, fault.RoomClosed, lobby.Leave(roomId, testApp, "bob"), "leave closed")
	assert.Equal(t, fault.RoomClosed, lobby.Close(roomId, testApp, "alice"), "reclose")

	// open restores discovery and joining, owner-only in both calls
	assert.Equal(t, fault.NotRoomOwner, lobby.Open(roomId, testApp, "bob"), "non-owner open")
	assert.Nil(t, lobby.Open(roomId, testApp, "alice"), "open")
	assert.Equal(t, fault.RoomNotClosed, lobby.Open(roomId, testApp, "alice"), "reopen")

	n, _ = lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(1), n, "available count after open")

	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join after open")
}

func TestRemove(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)
	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")

	charged, _ := lobby.Balance("alice")

	assert.Equal(t, fault.NotRoomOwner, lobby.Remove(roomId, testApp, "bob"), "non-owner remove")
	assert.Nil(t, lobby.Remove(roomId, testApp, "alice"), "remove")

	// every index reference is purged
	_, err := lobby.GetRoom(testApp, roomId)
	assert.Equal(t, fault.RoomNotFound, err, "room record")

	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(0), n, "available count")

	owned, _ := lobby.ListOwnerRooms(testApp, "alice", 0, 10)
	assert.Equal(t, 0, len(owned), "owner rooms")

	for _, id := range []identity.ID{"alice", "bob"} {
		current, err := lobby.GetAccountRoom(testApp, id)
		assert.Nil(t, err, "account room")
		assert.Nil(t, current, "current room not purged")
	}

	// the freed bytes are credited back
	account, _ := lobby.Balance("alice")
	assert.True(t, account.UsedBytes < charged.UsedBytes, "owner credited")

	// the id is never reused
	next := createTestRoom(t, testConfig)
	assert.Equal(t, roomId+1, next, "id reuse")
}

func TestKickAndBan(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)
	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")

	assert.Equal(t, fault.NotRoomOwner, lobby.KickAndBan("alice", roomId, testApp, "bob"), "non-owner kick")
	assert.Equal(t, fault.OwnerCannotBeBanned, lobby.KickAndBan("alice", roomId, testApp, "alice"), "ban owner")

	assert.Nil(t, lobby.KickAndBan("bob", roomId, testApp, "alice"), "kick")

	room, _ := lobby.GetRoom(testApp, roomId)
	assert.Equal(t, []identity.ID{"alice"}, room.Players, "players after kick")
	assert.Equal(t, []identity.ID{"bob"}, room.Banned, "banned after kick")

	current, err := lobby.GetAccountRoom(testApp, "bob")
	assert.Nil(t, err, "account room")
	assert.Nil(t, current, "kicked player still current")

	assert.Equal(t, fault.PlayerBanned, lobby.Join(roomId, testApp, "bob"), "banned rejoin")

	// pre-ban of a non-member blocks a later join
	assert.Nil(t, lobby.KickAndBan("mallory", roomId, testApp, "alice"), "pre-ban")
	assert.Equal(t, fault.PlayerBanned, lobby.Join(roomId, testApp, "mallory"), "pre-banned join")

	assert.Nil(t, lobby.Close(roomId, testApp, "alice"), "close")
	assert.Equal(t, fault.RoomClosed, lobby.KickAndBan("carol", roomId, testApp, "alice"), "kick in closed room")
}

func TestHiddenRoom(t *testing.T) {
	setup(t)
	defer teardown(t)

	config := testConfig
	config.IsHidden = true
	roomId := createTestRoom(t, config)

	// not discoverable
	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(0), n, "available count")

	rooms, _ := lobby.ListAppRooms(testApp, 0, 10)
	assert.Equal(t, 0, len(rooms), "listed rooms")

	_, err := lobby.RandomJoin(testApp, "bob")
	assert.Equal(t, fault.NoRoomsAvailable, err, "random join")

	// but reachable by id
	room, err := lobby.GetRoom(testApp, roomId)
	assert.Nil(t, err, "get room")
	assert.True(t, room.IsHidden, "hidden flag")
	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "direct join")

	// open after close must not leak a hidden room into discovery
	assert.Nil(t, lobby.Close(roomId, testApp, "alice"), "close")
	assert.Nil(t, lobby.Open(roomId, testApp, "alice"), "open")
	n, _ = lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(0), n, "available count after open")
}

func TestStorageLimit(t *testing.T) {
	setup(t)
	defer teardown(t)

	config := testConfig
	config.PlayerLimit = 1000
	roomId := createTestRoom(t, config)

	// keep joining until the owner's balance no longer covers the
	// usage; growth is strictly monotonic so this must terminate
	limited := false
	var failed identity.ID
loop:
	for i := 0; i < 500; i += 1 {
		player := identity.ID(fmt.Sprintf("player-%03d", i))
		switch err := lobby.Join(roomId, testApp, player); err {
		case nil:
		case fault.StorageLimitExceeded:
			limited = true
			failed = player
			break loop
		default:
			t.Fatalf("unexpected join error: %s", err)
		}
	}
	if !limited {
		t.Fatalf("storage limit never reached")
	}

	// the rejected join left no partial effect
	room, _ := lobby.GetRoom(testApp, roomId)
	assert.False(t, room.IsMember(failed), "rejected player is a member")

	current, err := lobby.GetAccountRoom(testApp, failed)
	assert.Nil(t, err, "account room")
	assert.Nil(t, current, "rejected player has a current room")

	// the usage still satisfies the coverage invariant
	account, _ := lobby.Balance("alice")
	assert.True(t, account.UsedBytes*ledger.BytePrice <= account.Balance, "coverage invariant")

	// a deposit unblocks the next join
	_, err = lobby.Deposit("alice", ledger.MinimumBalance)
	assert.Nil(t, err, "deposit")
	assert.Nil(t, lobby.Join(roomId, testApp, failed), "join after deposit")
}

func TestCreateRoomStorageLimit(t *testing.T) {
	setup(t)
	defer teardown(t)

	config := testConfig
	config.PlayerLimit = 1000
	roomId := createTestRoom(t, config)

	// exhaust the owner's coverage with joins; a join stages fewer
	// bytes than a create so the next create cannot be covered either
	limited := false
	for i := 0; i < 500; i += 1 {
		player := identity.ID(fmt.Sprintf("player-%03d", i))
		if err := lobby.Join(roomId, testApp, player); fault.StorageLimitExceeded == err {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("storage limit never reached")
	}

	_, err := lobby.CreateRoom(&config, "alice", 0)
	assert.Equal(t, fault.StorageLimitExceeded, err, "uncovered create")

	// the aborted create left no trace in any pool
	_, err = lobby.GetRoom(testApp, roomId+1)
	assert.Equal(t, fault.RoomNotFound, err, "aborted room record")

	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(1), n, "available count")

	owned, _ := lobby.ListOwnerRooms(testApp, "alice", 0, 10)
	assert.Equal(t, 1, len(owned), "owner rooms")

	current, _ := lobby.GetAccountRoom(testApp, "alice")
	assert.Equal(t, roomId, current.RoomId, "owner current room")

	// the sequence was not consumed by the rejected create
	_, err = lobby.Deposit("alice", ledger.MinimumBalance)
	assert.Nil(t, err, "deposit")
	next, err := lobby.CreateRoom(&config, "alice", 0)
	assert.Nil(t, err, "create after deposit")
	assert.Equal(t, roomId+1, next, "next room id")
}

func TestInterleavedOwnersMetering(t *testing.T) {
	setup(t)
	defer teardown(t)

	// two owners share one app; the first remove of a cycle shrinks
	// the shared availability counter and the last remove deletes it.
	// Those bytes belong to no single account, so repeated cycles
	// must leave both owners' usage exactly where it started.
	firstA, err := lobby.CreateRoom(&testConfig, "alice", ledger.MinimumBalance)
	assert.Nil(t, err, "first alice create")
	firstB, err := lobby.CreateRoom(&testConfig, "bob", ledger.MinimumBalance)
	assert.Nil(t, err, "first bob create")
	assert.Nil(t, lobby.Remove(firstA, testApp, "alice"), "first alice remove")
	assert.Nil(t, lobby.Remove(firstB, testApp, "bob"), "first bob remove")

	baseA, _ := lobby.Balance("alice")
	baseB, _ := lobby.Balance("bob")

	for cycle := 0; cycle < 6; cycle += 1 {
		idA, err := lobby.CreateRoom(&testConfig, "alice", 0)
		assert.Nil(t, err, "alice create")
		idB, err := lobby.CreateRoom(&testConfig, "bob", 0)
		assert.Nil(t, err, "bob create")

		n, _ := lobby.NumberOfAvailableRooms(testApp)
		assert.Equal(t, uint64(2), n, "available count")

		assert.Nil(t, lobby.Remove(idA, testApp, "alice"), "alice remove")
		assert.Nil(t, lobby.Remove(idB, testApp, "bob"), "bob remove")

		n, _ = lobby.NumberOfAvailableRooms(testApp)
		assert.Equal(t, uint64(0), n, "available count after cycle")

		accountA, _ := lobby.Balance("alice")
		accountB, _ := lobby.Balance("bob")
		assert.Equal(t, baseA.UsedBytes, accountA.UsedBytes, "alice used bytes")
		assert.Equal(t, baseB.UsedBytes, accountB.UsedBytes, "bob used bytes")
	}
}

func TestDeposit(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := lobby.Deposit("dave", 0)
	assert.Equal(t, fault.MissingParameters, err, "zero deposit")

	_, err = lobby.Deposit("dave", ledger.MinimumBalance-1)
	assert.Equal(t, fault.InsufficientDeposit, err, "underfunded registration")

	account, err := lobby.Deposit("dave", ledger.MinimumBalance)
	assert.Nil(t, err, "registration")
	assert.Equal(t, uint64(ledger.MinimumBalance), account.Balance, "balance")

	account, err = lobby.Deposit("dave", 7)
	assert.Nil(t, err, "top-up")
	assert.Equal(t, uint64(ledger.MinimumBalance+7), account.Balance, "topped balance")

	stored, err := lobby.Balance("dave")
	assert.Nil(t, err, "balance query")
	assert.Equal(t, account.Balance, stored.Balance, "stored balance")

	_, err = lobby.Balance("nobody")
	assert.Equal(t, fault.AccountNotFound, err, "unknown account")
}

func TestListPagination(t *testing.T) {
	setup(t)
	defer teardown(t)

	for i := 0; i < 5; i += 1 {
		createTestRoom(t, testConfig)
	}

	first, err := lobby.ListAppRooms(testApp, 0, 2)
	assert.Nil(t, err, "page one")
	second, err := lobby.ListAppRooms(testApp, 2, 2)
	assert.Nil(t, err, "page two")

	assert.Equal(t, 2, len(first), "page one size")
	assert.Equal(t, 2, len(second), "page two size")
	assert.NotEqual(t, first[1].RoomId, second[0].RoomId, "page overlap")

	tail, err := lobby.ListAppRooms(testApp, 4, 10)
	assert.Nil(t, err, "tail page")
	assert.Equal(t, 1, len(tail), "tail size")
}

func TestReindex(t *testing.T) {
	setup(t)
	defer teardown(t)

	roomId := createTestRoom(t, testConfig)
	assert.Nil(t, lobby.Join(roomId, testApp, "bob"), "join")

	hidden := testConfig
	hidden.IsHidden = true
	hiddenId := createTestRoom(t, hidden)

	closed := createTestRoom(t, testConfig)
	assert.Nil(t, lobby.Close(closed, testApp, "alice"), "close")

	// drop the index database and rebuild from the room records
	_ = lobby.Finalise()
	storage.Finalise()
	removeIndex := databaseFileName + "-index.leveldb"
	if err := os.RemoveAll(removeIndex); nil != err {
		t.Fatalf("cannot remove index database: %s", err)
	}

	mustReindex, err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	assert.True(t, mustReindex, "reindex flag")

	assert.Nil(t, lobby.Reindex(), "reindex")
	assert.Nil(t, lobby.Initialise(entropy.Fixed(0)), "lobby initialise")

	// available set: the open visible room only
	n, _ := lobby.NumberOfAvailableRooms(testApp)
	assert.Equal(t, uint64(1), n, "available count")

	rooms, _ := lobby.ListAppRooms(testApp, 0, 10)
	assert.Equal(t, 1, len(rooms), "listed rooms")
	assert.Equal(t, roomId, rooms[0].RoomId, "listed room id")

	// current room entries restored
	current, _ := lobby.GetAccountRoom(testApp, "bob")
	assert.Equal(t, roomId, current.RoomId, "bob current room")

	// owner list restored
	owned, _ := lobby.ListOwnerRooms(testApp, "alice", 0, 10)
	assert.Equal(t, 3, len(owned), "owner rooms")

	_ = hiddenId
}
