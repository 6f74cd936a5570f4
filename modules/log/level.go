// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"slices"
	"strings"
)

// Level is the level of the logger
type Level int

const (
	UNDEFINED Level = iota
	TRACE
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
	NONE
)

var levelNames = [...]string{
	UNDEFINED: "undefined",
	TRACE:     "trace",
	DEBUG:     "debug",
	INFO:      "info",
	WARN:      "warn",
	ERROR:     "error",
	FATAL:     "fatal",
	NONE:      "none",
}

var levelColors = [...][]ColorAttribute{
	TRACE: {Bold, FgCyan},
	DEBUG: {Bold, FgBlue},
	INFO:  {Bold, FgGreen},
	WARN:  {Bold, FgYellow},
	ERROR: {Bold, FgRed},
	FATAL: {Bold, BgRed},
	NONE:  {Reset},
}

func (l Level) valid() bool {
	return l >= UNDEFINED && l <= NONE
}

func (l Level) String() string {
	if !l.valid() {
		return "info"
	}
	return levelNames[l]
}

// ColorAttributes returns the terminal attributes used to print the level
func (l Level) ColorAttributes() []ColorAttribute {
	if !l.valid() || levelColors[l] == nil {
		return levelColors[NONE]
	}
	return levelColors[l]
}

// LevelFromString parses a level name case-insensitively.
// "warning" is an alias of "warn", unknown names are INFO.
func LevelFromString(level string) Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return WARN
	}
	if i := slices.Index(levelNames[:], level); i >= 0 {
		return Level(i)
	}
	return INFO
}
