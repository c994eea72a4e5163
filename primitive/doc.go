// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package primitive - fixed width values shared by channels and tickets
//
// Every type here serialises to a constant number of bytes; several
// storage keys embed these encodings directly.
package primitive
