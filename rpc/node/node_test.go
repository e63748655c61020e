// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/roomstore/roomd/counter"
	"github.com/roomstore/roomd/rpc/fixtures"
	"github.com/roomstore/roomd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctr := counter.Counter(3)
	n := node.New(
		logger.New(fixtures.LogCategory),
		time.Now().Add(-time.Minute),
		"1",
		&ctr,
	)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "1", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.Connections, "wrong connection count")
	assert.NotEmpty(t, reply.Uptime, "wrong uptime")
}
