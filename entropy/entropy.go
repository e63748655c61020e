// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy - external randomness for room selection
//
// The selection routine is deterministic given a seed, so the seed
// source is an injected capability and tests can pin the outcome.
package entropy

import (
	"crypto/rand"

	"github.com/bitmark-inc/logger"
)

// SeedLength - bytes supplied by a source per request
const SeedLength = 32

// Source - supplier of raw seed bytes
type Source interface {
	Seed() ([]byte, error)
}

type systemSource struct{}

// System - source backed by the operating system RNG
func System() Source {
	return systemSource{}
}

func (systemSource) Seed() ([]byte, error) {
	seed := make([]byte, SeedLength)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return seed, nil
}

type fixedSource byte

// Fixed - deterministic source for testing, every seed byte is b
func Fixed(b byte) Source {
	return fixedSource(b)
}

func (f fixedSource) Seed() ([]byte, error) {
	seed := make([]byte, SeedLength)
	for i := range seed {
		seed[i] = byte(f)
	}
	return seed, nil
}

// Pick - map the seed byte at a fixed position onto [0, n)
//
// selection is floor((r / 256) * n) which stays in range for every
// byte value and any n >= 1; callers must guard n == 0
func Pick(seed []byte, index int, n int) int {
	if n < 1 {
		logger.Panicf("entropy: pick from empty set")
	}
	if index >= len(seed) {
		logger.Panicf("entropy: seed too short: %d bytes, index: %d", len(seed), index)
	}
	return int(float64(seed[index]) / 256.0 * float64(n))
}
