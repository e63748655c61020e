// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 roomd project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountNotFound              = NotFoundError("account not found")
	AlreadyInRoom                = ExistsError("account is already in a room")
	AlreadyInitialised           = ProcessError("already initialised")
	AlreadyJoined                = ExistsError("player has already joined")
	CertificateFileAlreadyExists = ProcessError("certificate file already exists")
	InsufficientDeposit          = ProcessError("deposit is less than the minimum storage balance")
	InvalidAppName               = InvalidError("app name is invalid")
	InvalidCount                 = InvalidError("count is invalid")
	InvalidCursor                = InvalidError("cursor is invalid")
	InvalidIdentity              = InvalidError("identity is invalid")
	InvalidIpAddress             = InvalidError("invalid ip Address")
	InvalidPlayerLimit           = InvalidError("player limit is invalid")
	InvalidRoomName              = InvalidError("room name is invalid")
	KeyFileAlreadyExists         = ProcessError("key file already exists")
	MissingParameters            = ProcessError("missing parameters")
	NoRoomsAvailable             = NotFoundError("no rooms available")
	NotAMember                   = InvalidError("player is not a member of the room")
	NotInitialised               = ProcessError("not initialised")
	NotRoomOwner                 = AuthorizationError("only the room owner can do this")
	NotRoomRecord                = InvalidError("not a room record")
	OwnerCannotBeBanned          = InvalidError("the room owner cannot be banned")
	OwnerCannotLeave             = InvalidError("the room owner cannot leave the room")
	PlayerBanned                 = InvalidError("player is banned from the room")
	PlayerLimitExceeded          = InvalidError("player limit exceeded")
	RateLimiting                 = ProcessError("rate limiting")
	RoomClosed                   = InvalidError("the room is closed")
	RoomNotClosed                = InvalidError("the room is not closed")
	RoomNotFound                 = NotFoundError("room not found")
	StorageLimitExceeded         = ProcessError("not enough storage balance")
	TransactionInUse             = ProcessError("transaction already in use")
	WrongApp                     = NotFoundError("room does not belong to the app")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
