// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"strings"

	"github.com/relaymesh/ticketledger/fault"
)

// Status - lifecycle of a channel on chain
type Status uint8

// the channel states
const (
	Closed         Status = 0
	Open           Status = 1
	PendingToClose Status = 2
)

var statusNames = map[Status]string{
	Closed:         "Closed",
	Open:           "Open",
	PendingToClose: "PendingToClose",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText - status name for JSON
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - case insensitive status name
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if strings.EqualFold(name, string(text)) {
			*s = status
			return nil
		}
	}
	return fault.InvalidError("invalid channel status: " + string(text))
}

// Direction - channel orientation relative to the local node
type Direction int

// the orientations
const (
	Incoming Direction = iota + 1
	Outgoing
)

func (d Direction) String() string {
	switch d {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	default:
		return "unrelated"
	}
}
