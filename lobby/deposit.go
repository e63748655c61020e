// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lobby

import (
	"github.com/roomstore/roomd/fault"
	"github.com/roomstore/roomd/identity"
	"github.com/roomstore/roomd/ledger"
	"github.com/roomstore/roomd/storage"
)

// Deposit - credit storage balance to an account
//
// registers the account when unknown, so the first deposit must meet
// the registration minimum; later deposits have no lower bound
func Deposit(id identity.ID, payment uint64) (*ledger.Account, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if 0 == payment {
		return nil, fault.MissingParameters
	}

	account, err := ledger.GetOrCreate(id, payment)
	if nil != err {
		return nil, err
	}

	// no bytes move, so no tracker on this transaction
	trx, err := storage.NewDBTransaction(nil)
	if nil != err {
		return nil, err
	}
	ledger.Store(trx, id, account)
	if err := trx.Commit(); nil != err {
		return nil, err
	}

	globalData.log.Infof("deposit: %d to: %q", payment, id)
	return account, nil
}
