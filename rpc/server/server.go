// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/counter"
	"github.com/roomstore/roomd/rpc/app"
	"github.com/roomstore/roomd/rpc/node"
	"github.com/roomstore/roomd/rpc/room"
)

// Create - register all services with a new RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(room.New(log))
	_ = server.Register(app.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
