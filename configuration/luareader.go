// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/relaymesh/ticketledger/fault"
)

// TagName - struct tag naming the Lua table field of a configuration item
const TagName = "gluamapper"

// ParseConfigurationFile - execute a Lua file and assign the table
// it returns to a configuration structure
//
// fields missing from the table keep their current values so
// defaults can be set before parsing
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := newState(fileName)
	defer L.Close()

	if err := L.DoFile(fileName); nil != err {
		return err
	}
	return mapResult(L, config)
}

// ParseConfigurationString - as ParseConfigurationFile for an in-memory chunk
func ParseConfigurationString(source string, config interface{}) error {
	L := newState("")
	defer L.Close()

	if err := L.DoString(source); nil != err {
		return err
	}
	return mapResult(L, config)
}

func newState(fileName string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()

	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	return L
}

func mapResult(L *lua.LState, config interface{}) error {
	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrMissingConfiguration
	}

	mapper := gluamapper.Mapper{
		Option: gluamapper.Option{
			NameFunc: func(s string) string {
				return s
			},
			TagName: TagName,
		},
	}
	return mapper.Map(table, config)
}
