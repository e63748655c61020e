// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains two LevelDB databases, each split into a series of
// tables.  Each table is defined by a prefix byte that is obtained
// from the prefix tag in the struct defining the available tables.
//
// The "data" database holds the canonical records; the "index"
// database holds only entries that are derivable from the data
// database, so it can be dropped and rebuilt when its layout version
// changes.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++          = concatenation of byte data
// 3. room id     = big endian uint64 (8 bytes)
// 4. app         = app digest as 32 byte SHA3-256(app name)
// 5. identity    = owner/player identity string (2..64 bytes)
// 6. count       = successive index value as big endian uint64 (8 bytes)
//
// Data database:
//
//   R ++ room id               - canonical room records
//                                data: packed room record
//   A ++ identity              - storage accounts
//                                data: balance ++ used bytes (16 bytes)
//   G ++ "roomid"              - next room id to allocate
//                                data: big endian uint64 (8 bytes)
//
// Index database:
//
//   V ++ app ++ room id        - set of open, discoverable rooms
//                                data: 01
//   K ++ app                   - size of the available set
//                                data: count
//   C ++ app ++ identity       - room the account is currently in
//                                data: room id
//   N ++ app ++ identity       - next count value to use for appending to owned rooms
//                                data: count
//   L ++ app ++ identity ++ count
//                              - list of owned rooms
//                                data: room id
//   D ++ app ++ identity ++ room id
//                              - position in list of owned rooms, for delete after removal
//                                data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
