// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/relaymesh/ticketledger/channel"
	"github.com/relaymesh/ticketledger/fault"
	"github.com/relaymesh/ticketledger/ledger"
	"github.com/relaymesh/ticketledger/primitive"
)

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		fmt.Printf("usage: %s [--help] [--verbose] --config-file=FILE command [arguments...]\n", program)
		fmt.Printf("\n")
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")
		fmt.Printf("  channels                   (c)      - list channels with their unrealized balance\n\n")
		fmt.Printf("  tickets [CHANNEL]          (t)      - list acknowledged tickets\n\n")
		fmt.Printf("  unacknowledged [CHANNEL]   (u)      - list tickets waiting for acknowledgement\n\n")
		fmt.Printf("  unrealized CHANNEL                  - channel balance not claimed by tickets\n\n")
		fmt.Printf("  stats                      (s)      - ticket statistics\n\n")
		fmt.Printf("  snapshot                            - last applied chain position\n\n")
		fmt.Printf("  cleanup CHANNEL                     - neglect tickets of earlier channel epochs\n\n")

	default:
		return false
	}

	return true
}

func isWriteCommand(command string) bool {
	return "cleanup" == command
}

type channelInfo struct {
	ID         primitive.Hash    `json:"id"`
	Direction  string            `json:"direction"`
	Unrealized primitive.Balance `json:"unrealizedBalance"`
	*channel.Entry
}

type snapshotInfo struct {
	Snapshot    *primitive.Snapshot `json:"latestConfirmedSnapshot"`
	BlockNumber uint64              `json:"latestBlockNumber"`
}

type statisticsInfo struct {
	*ledger.Statistics
	Acknowledged int `json:"acknowledgedCount"`
}

// data command handler
//
// commands that read or modify the ledger
func processDataCommand(log *logger.L, l *ledger.Ledger, arguments []string) bool {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {
	case "channels", "c":
		channels, err := l.GetChannels()
		if nil != err {
			exitwithstatus.Message("channels error: %s", err)
		}
		info := make([]channelInfo, 0, len(channels))
		for _, ch := range channels {
			direction, _ := ch.Direction(l.Me())
			unrealized, err := l.GetUnrealizedBalance(ch.ID())
			if nil != err {
				exitwithstatus.Message("unrealized balance error: %s", err)
			}
			info = append(info, channelInfo{
				ID:         ch.ID(),
				Direction:  direction.String(),
				Unrealized: unrealized,
				Entry:      ch,
			})
		}
		printJson("channels", info)

	case "tickets", "t":
		tickets, err := l.GetAcknowledgedTickets(optionalChannel(l, arguments))
		if nil != err {
			exitwithstatus.Message("tickets error: %s", err)
		}
		printJson("acknowledged tickets", tickets)

	case "unacknowledged", "u":
		tickets, err := l.GetUnacknowledgedTickets(optionalChannel(l, arguments))
		if nil != err {
			exitwithstatus.Message("tickets error: %s", err)
		}
		printJson("unacknowledged tickets", tickets)

	case "unrealized":
		ch := requiredChannel(l, arguments)
		balance, err := l.GetUnrealizedBalance(ch.ID())
		if nil != err {
			exitwithstatus.Message("unrealized balance error: %s", err)
		}
		printJson("unrealized balance", balance)

	case "stats", "s":
		statistics, err := l.GetStatistics()
		if nil != err {
			exitwithstatus.Message("statistics error: %s", err)
		}
		n, err := l.GetAcknowledgedTicketsCount(nil)
		if nil != err {
			exitwithstatus.Message("statistics error: %s", err)
		}
		printJson("statistics", statisticsInfo{Statistics: statistics, Acknowledged: n})

	case "snapshot":
		snapshot, err := l.GetLatestConfirmedSnapshot()
		if nil != err {
			exitwithstatus.Message("snapshot error: %s", err)
		}
		block, err := l.GetLatestBlockNumber()
		if nil != err {
			exitwithstatus.Message("block number error: %s", err)
		}
		printJson("chain", snapshotInfo{Snapshot: snapshot, BlockNumber: block})

	case "cleanup":
		ch := requiredChannel(l, arguments)
		log.Infof("cleanup of channel: %s epoch: %d", ch.ID(), ch.ChannelEpoch)
		if err := l.CleanupInvalidChannelTickets(ch); nil != err {
			log.Errorf("cleanup error: %s", err)
			exitwithstatus.Message("cleanup error: %s", err)
		}
		statistics, err := l.GetStatistics()
		if nil != err {
			exitwithstatus.Message("statistics error: %s", err)
		}
		printJson("statistics", statistics)

	default:
		return false
	}

	return true
}

// channel named by the first argument, nil if there are no arguments
func optionalChannel(l *ledger.Ledger, arguments []string) *channel.Entry {
	if 0 == len(arguments) {
		return nil
	}
	return requiredChannel(l, arguments)
}

func requiredChannel(l *ledger.Ledger, arguments []string) *channel.Entry {
	if 0 == len(arguments) {
		exitwithstatus.Message("error: missing channel id")
	}
	id, err := primitive.HashFromHex(arguments[0])
	if nil != err {
		exitwithstatus.Message("error: channel id: %q  error: %s", arguments[0], err)
	}
	ch, err := l.GetChannel(id)
	if nil != err {
		exitwithstatus.Message("error: channel: %s  error: %s", id, err)
	}
	if nil == ch {
		exitwithstatus.Message("error: channel: %s  error: %s", id, fault.ErrChannelNotFound)
	}
	return ch
}
