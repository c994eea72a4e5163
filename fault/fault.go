// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ContractError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrChannelClosed           = ContractError("channel is closed")
	ErrChannelEpochMismatch    = ContractError("channel epoch does not match")
	ErrChannelMissingForTicket = RecordError("channel of stored ticket does not exist")
	ErrChannelNotFound         = NotFoundError("channel not found")
	ErrDatabaseIsNotSet        = ProcessError("database is not set")
	ErrDatabaseVersion         = ProcessError("database version is newer than supported")
	ErrInvalidAddress          = InvalidError("invalid address")
	ErrInvalidBackend          = InvalidError("invalid database backend")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidHexLength        = LengthError("hex value length is invalid")
	ErrInvalidIndexRange       = ContractError("index range start must be below end")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidNodeAddress      = InvalidError("invalid node address")
	ErrKeyLength               = ContractError("key suffix length is invalid")
	ErrKeyTooLong              = ContractError("key exceeds maximum length")
	ErrMissingConfiguration    = InvalidError("missing configuration")
	ErrNotIncomingChannel      = ContractError("channel is not an incoming channel")
	ErrNotOwnChannel           = ContractError("channel does not belong to this node")
	ErrRecordTruncated         = RecordError("record is truncated")
	ErrRecordVersion           = RecordError("record version is not supported")
	ErrStartIndexAhead         = ContractError("start index is ahead of channel ticket index")
	ErrTicketNotFound          = NotFoundError("ticket not found")
	ErrTransactionInUse        = ProcessError("transaction already in use")
	ErrTransactionNotInUse     = ProcessError("transaction not in use")
	ErrUnknownChannel          = ContractError("channel to aggregate does not exist")
	ErrValueLength             = LengthError("value length is invalid")
	ErrWrongDatabaseBucket     = NotFoundError("database bucket is missing")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ContractError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrContract(e error) bool { _, ok := e.(ContractError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
