// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - per-account storage balances and usage metering
//
// Every account record holds a balance of storage credit and the
// number of bytes the account currently occupies in the store.  A
// mutation is bracketed by a StorageTracker and settled here: net
// growth charges the account and must stay covered by the balance,
// net shrinkage is credited back.
package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/storage"
)

// pricing and registration bounds
const (
	BytePrice           = 10 // balance units per stored byte
	MinimumStorageBytes = 2000
	MinimumBalance      = MinimumStorageBytes * BytePrice

	accountRecordLength = 16
)

// Account - balance and usage of one identity
type Account struct {
	Balance   uint64
	UsedBytes uint64
}

// Pack - fixed length serialization: balance ++ used bytes, big endian
func (account *Account) Pack() []byte {
	buffer := make([]byte, accountRecordLength)
	binary.BigEndian.PutUint64(buffer[:8], account.Balance)
	binary.BigEndian.PutUint64(buffer[8:], account.UsedBytes)
	return buffer
}

func unpackAccount(id identity.ID, buffer []byte) *Account {
	if accountRecordLength != len(buffer) {
		logger.Panicf("ledger: corrupt account record for: %q: %x", id, buffer)
	}
	return &Account{
		Balance:   binary.BigEndian.Uint64(buffer[:8]),
		UsedBytes: binary.BigEndian.Uint64(buffer[8:]),
	}
}

// Get - fetch an existing account
func Get(id identity.ID) (*Account, error) {
	buffer := storage.Pool.Accounts.Get(id.Bytes())
	if nil == buffer {
		return nil, fault.AccountNotFound
	}
	return unpackAccount(id, buffer), nil
}

// GetOrCreate - fetch an account, registering it when absent
//
// the attached payment is credited to the balance; a new account must
// be funded with at least the minimum storage balance
func GetOrCreate(id identity.ID, payment uint64) (*Account, error) {
	if err := id.Validate(); nil != err {
		return nil, err
	}

	buffer := storage.Pool.Accounts.Get(id.Bytes())
	if nil == buffer {
		if payment < MinimumBalance {
			return nil, fault.InsufficientDeposit
		}
		return &Account{
			Balance:   payment,
			UsedBytes: 0,
		}, nil
	}

	account := unpackAccount(id, buffer)
	account.Balance += payment
	return account, nil
}

// Settle - reconcile a finished bracket into the account
//
// net bytes added are charged against the balance, failing with
// StorageLimitExceeded when the usage is no longer covered; net bytes
// released are credited back, an underflow there is an accounting
// defect and fatal; the tracker counters are cleared either way
func (account *Account) Settle(tracker *StorageTracker) error {
	if tracker.active {
		logger.Panic("ledger: settle inside an open bracket")
	}

	added := tracker.bytesAdded
	released := tracker.bytesReleased
	tracker.bytesAdded = 0
	tracker.bytesReleased = 0

	switch {
	case added > released:
		account.UsedBytes += added - released
		if account.UsedBytes*BytePrice > account.Balance {
			return fault.StorageLimitExceeded
		}
	case released > added:
		n := released - added
		if n > account.UsedBytes {
			logger.Panicf("ledger: internal storage accounting bug: release: %d  used: %d", n, account.UsedBytes)
		}
		account.UsedBytes -= n
	}
	return nil
}

// Store - stage the account record into a transaction
//
// called after Settle, outside the tracker bracket, so the account
// record itself is not metered
func Store(trx storage.Transaction, id identity.ID, account *Account) {
	trx.Put(storage.Pool.Accounts, id.Bytes(), account.Pack())
}
