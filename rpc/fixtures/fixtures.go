// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Certificate - PEM data of the self signed test certificate
func Certificate(fixtureDir string) string {
	return readFile(path.Join(fixtureDir, "test.crt"))
}

// Key - PEM data of the matching test private key
func Key(fixtureDir string) string {
	return readFile(path.Join(fixtureDir, "test.key"))
}

func readFile(name string) string {
	data, err := ioutil.ReadFile(name)
	if nil != err {
		fmt.Println("read fixture with error: ", err)
		return ""
	}
	return string(data)
}
