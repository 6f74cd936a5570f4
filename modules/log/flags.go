// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import "strings"

// Prefix flags of a log line, or'ed together. With LstdFlags a line reads
//
//	2026/01/23 01:23:23 ...web/submodule.go:42:SubmoduleLinks() [I] message
const (
	Ldate          = 1 << iota // local date 2026/01/23
	Ltime                      // local time 01:23:23
	Lmicroseconds              // 01:23:23.123123, implies Ltime
	Llongfile                  // full caller path and line
	Lshortfile                 // base name of the caller file and line
	Lfuncname                  // full name of the calling function
	Lshortfuncname             // last element of the calling function name
	LUTC                       // date and time in UTC
	Llevelinitial              // [I]
	Llevel                     // [INFO]

	// Lmedfile keeps the last 20 characters of the caller path
	Lmedfile = Lshortfile | Llongfile

	LstdFlags = Ldate | Ltime | Lmedfile | Lshortfuncname | Llevelinitial
)

var flagNames = map[string]int{
	"none":          0,
	"date":          Ldate,
	"time":          Ltime,
	"microseconds":  Lmicroseconds,
	"longfile":      Llongfile,
	"shortfile":     Lshortfile,
	"medfile":       Lmedfile,
	"funcname":      Lfuncname,
	"shortfuncname": Lshortfuncname,
	"utc":           LUTC,
	"levelinitial":  Llevelinitial,
	"level":         Llevel,
	"stdflags":      LstdFlags,
}

// FlagsFromString parses the comma or space separated FLAGS setting.
// Unknown names are skipped, -1 (no prefix at all) is returned when nothing is set.
func FlagsFromString(from string) int {
	flags := 0
	for _, name := range strings.FieldsFunc(strings.ToLower(from), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		flags |= flagNames[name]
	}
	if flags == 0 {
		return -1
	}
	return flags
}
