// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - caller and owner identifiers
//
// Identities are opaque printable names supplied by the host
// environment.  They are used directly as key material in the storage
// pools, so the character set and length are restricted.
package identity

import (
	"github.com/roomstore/roomd/fault"
)

// limits on an identity string
const (
	MinimumLength = 2
	MaximumLength = 64
)

// ID - an account identity
type ID string

// Validate - check an identity is acceptable as key material
//
// rules: 2..64 characters of lower case letters, digits and the
// separators '-', '_' and '.'; separators cannot start or end the
// identity and cannot be doubled
func (id ID) Validate() error {
	if len(id) < MinimumLength || len(id) > MaximumLength {
		return fault.InvalidIdentity
	}

	lastWasSeparator := true // disallow a leading separator
	for i := 0; i < len(id); i += 1 {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastWasSeparator = false
		case '-' == c, '_' == c, '.' == c:
			if lastWasSeparator {
				return fault.InvalidIdentity
			}
			lastWasSeparator = true
		default:
			return fault.InvalidIdentity
		}
	}
	if lastWasSeparator { // disallow a trailing separator
		return fault.InvalidIdentity
	}
	return nil
}

// Bytes - key material for storage pools
func (id ID) Bytes() []byte {
	return []byte(id)
}

// String - the error interface style accessor
func (id ID) String() string {
	return string(id)
}
