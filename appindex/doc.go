// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package appindex - denormalized per-app views of the room store
//
// Three indexes are kept per app namespace:
//
//   available rooms   V ++ app ++ roomId   -> 0x01
//   available count   K ++ app             -> count
//   current room      C ++ app ++ account  -> roomId
//   owner next count  N ++ app ++ owner    -> next append position
//   owner list        L ++ app ++ owner ++ position -> roomId
//   owner room index  D ++ app ++ owner ++ roomId   -> position
//
// Indexes reference rooms by id only.  Every mutation that can add or
// remove a reference goes through exactly one routine in this package
// so no call site can update one index and forget another; all
// routines stage into the caller's transaction and commit together
// with the room record itself.
package appindex
