// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package roomrecord_test

import (
	"testing"

	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/roomrecord"
)

var testConfig = roomrecord.RoomConfig{
	App:         "space-battle",
	Name:        "deathmatch arena",
	IsHidden:    false,
	PlayerLimit: 4,
	Extra:       `{"map":"asteroid"}`,
}

func TestPackUnpack(t *testing.T) {
	room := roomrecord.NewRoom(7, &testConfig, "alice")
	room.AddPlayer("bob")
	room.Ban("mallory")
	room.IsClosed = true

	packed := room.Pack()
	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	if unpacked.RoomId != room.RoomId ||
		unpacked.App != room.App ||
		unpacked.Name != room.Name ||
		unpacked.Owner != room.Owner ||
		unpacked.PlayerLimit != room.PlayerLimit ||
		unpacked.IsHidden != room.IsHidden ||
		unpacked.IsClosed != room.IsClosed ||
		unpacked.Extra != room.Extra {
		t.Errorf("field mismatch, got: %v  expected: %v", unpacked, room)
	}
	if 2 != len(unpacked.Players) || "alice" != unpacked.Players[0] || "bob" != unpacked.Players[1] {
		t.Errorf("players mismatch, got: %v", unpacked.Players)
	}
	if 1 != len(unpacked.Banned) || "mallory" != unpacked.Banned[0] {
		t.Errorf("banned mismatch, got: %v", unpacked.Banned)
	}
}

func TestPackUnpackNoExtra(t *testing.T) {
	config := testConfig
	config.Extra = ""
	config.IsHidden = true

	room := roomrecord.NewRoom(1, &config, "alice")

	unpacked, err := room.Pack().Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if "" != unpacked.Extra {
		t.Errorf("extra mismatch, got: %q  expected: empty", unpacked.Extra)
	}
	if !unpacked.IsHidden {
		t.Errorf("hidden flag lost")
	}
	if 0 != len(unpacked.Banned) {
		t.Errorf("banned mismatch, got: %v", unpacked.Banned)
	}
}

func TestUnpackTruncated(t *testing.T) {
	packed := roomrecord.NewRoom(7, &testConfig, "alice").Pack()

	for _, n := range []int{0, 1, 9, len(packed) / 2, len(packed) - 1} {
		_, err := packed[:n].Unpack()
		if fault.NotRoomRecord != err {
			t.Errorf("truncation to %d bytes, got: %v  expected: %v", n, err, fault.NotRoomRecord)
		}
	}

	// trailing garbage is also rejected
	_, err := append(append(roomrecord.Packed{}, packed...), 0x00).Unpack()
	if fault.NotRoomRecord != err {
		t.Errorf("trailing byte, got: %v  expected: %v", err, fault.NotRoomRecord)
	}
}

func TestRemovePlayerSwapDelete(t *testing.T) {
	room := roomrecord.NewRoom(7, &testConfig, "alice")
	room.AddPlayer("bob")
	room.AddPlayer("carol")

	if !room.RemovePlayer("alice") {
		t.Fatalf("remove failed")
	}
	// swap-delete moves the last player into the vacated slot
	if 2 != len(room.Players) || "carol" != room.Players[0] || "bob" != room.Players[1] {
		t.Errorf("players mismatch, got: %v", room.Players)
	}
	if room.RemovePlayer("nobody") {
		t.Errorf("removed a non-member")
	}
}

func TestBanIsIdempotent(t *testing.T) {
	room := roomrecord.NewRoom(7, &testConfig, "alice")
	room.Ban("mallory")
	room.Ban("mallory")
	if 1 != len(room.Banned) {
		t.Errorf("banned mismatch, got: %v", room.Banned)
	}
	if !room.IsBanned("mallory") || room.IsBanned("bob") {
		t.Errorf("ban check mismatch")
	}
}

func TestConfigValidate(t *testing.T) {
	good := testConfig
	if err := good.Validate(); nil != err {
		t.Fatalf("valid config rejected: %s", err)
	}

	bad := testConfig
	bad.App = ""
	if err := bad.Validate(); fault.InvalidAppName != err {
		t.Errorf("app, got: %v  expected: %v", err, fault.InvalidAppName)
	}

	bad = testConfig
	bad.Name = ""
	if err := bad.Validate(); fault.InvalidRoomName != err {
		t.Errorf("name, got: %v  expected: %v", err, fault.InvalidRoomName)
	}

	bad = testConfig
	bad.PlayerLimit = 0
	if err := bad.Validate(); fault.InvalidPlayerLimit != err {
		t.Errorf("limit, got: %v  expected: %v", err, fault.InvalidPlayerLimit)
	}
}

func TestIsFull(t *testing.T) {
	config := testConfig
	config.PlayerLimit = 2

	room := roomrecord.NewRoom(7, &config, "alice")
	if room.IsFull() {
		t.Errorf("room full with one player")
	}
	room.AddPlayer("bob")
	if !room.IsFull() {
		t.Errorf("room not full at limit")
	}
}

func TestAppDigestDiffers(t *testing.T) {
	a := roomrecord.AppName("space-battle").Digest()
	b := roomrecord.AppName("card-game").Digest()
	if a == b {
		t.Errorf("digest collision")
	}
	if a != roomrecord.AppName("space-battle").Digest() {
		t.Errorf("digest not stable")
	}
}
