// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"
)

// StorageTracker - accumulates the byte deltas of one mutating
// operation
//
// a tracker is attached to a storage transaction and receives a
// report for every staged write between Start and Stop; brackets do
// not nest and counting outside a bracket is fatal
type StorageTracker struct {
	active        bool
	bytesAdded    uint64
	bytesReleased uint64
}

// Start - open the bracket
func (t *StorageTracker) Start() {
	if t.active {
		logger.Panic("ledger: storage tracker already started")
	}
	t.active = true
}

// Stop - close the bracket
func (t *StorageTracker) Stop() {
	if !t.active {
		logger.Panic("ledger: storage tracker is not active")
	}
	t.active = false
}

// Active - true while the bracket is open
func (t *StorageTracker) Active() bool {
	return t.active
}

// Add - count bytes written
func (t *StorageTracker) Add(n uint64) {
	if !t.active {
		logger.Panic("ledger: storage tracker counting while stopped")
	}
	t.bytesAdded += n
}

// Release - count bytes removed
func (t *StorageTracker) Release(n uint64) {
	if !t.active {
		logger.Panic("ledger: storage tracker counting while stopped")
	}
	t.bytesReleased += n
}
