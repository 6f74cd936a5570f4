// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoggerCreateMsg(t *testing.T) {
	prefix := "TestPrefix "
	flags := LstdFlags | LUTC | Lfuncname

	l := NewLogger(&bytes.Buffer{}, WriterMode{Level: INFO, Prefix: prefix, Flags: flags})

	location, _ := time.LoadLocation("EST")
	date := time.Date(2019, time.January, 13, 22, 3, 30, 15, location)
	dateString := date.UTC().Format("2006/01/02 15:04:05")

	for i := 0; i < 5; i++ {
		e := &event{
			level:    INFO,
			msg:      fmt.Sprintf("TEST MSG: %d", i),
			caller:   "CALLER",
			filename: "FULL/FILENAME",
			line:     i,
			time:     date,
		}
		expected := fmt.Sprintf("%s%s %s:%d:%s [%c] %s\n", prefix, dateString, e.filename, e.line, e.caller, strings.ToUpper(e.level.String())[0], e.msg)

		var buf []byte
		l.createMsg(&buf, e)
		assert.Equal(t, expected, string(buf))
	}
}

func TestLoggerMultiline(t *testing.T) {
	out := &bytes.Buffer{}
	l := NewLogger(out, WriterMode{Level: TRACE, Flags: -1})
	l.Info("first\nsecond\n")
	assert.Equal(t, "first\n        second\n", out.String())
}

func TestLoggerLevel(t *testing.T) {
	out := &bytes.Buffer{}
	l := NewLogger(out, WriterMode{Level: WARN, Flags: Llevel})

	l.Info("hidden")
	assert.Empty(t, out.String())

	l.Warn("shown %d", 1)
	assert.Equal(t, "[WARN] shown 1\n", out.String())

	out.Reset()
	l.SetLevel(DEBUG)
	l.Debug("debug")
	assert.Equal(t, "[DEBUG] debug\n", out.String())
	assert.True(t, l.LevelEnabled(ERROR))
	assert.False(t, l.LevelEnabled(TRACE))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, TRACE, LevelFromString("trace"))
	assert.Equal(t, WARN, LevelFromString(" Warning "))
	assert.Equal(t, INFO, LevelFromString("no-such-level"))
	assert.Equal(t, NONE, LevelFromString("NONE"))

	assert.Equal(t, "error", ERROR.String())
	assert.Equal(t, "info", Level(42).String())
	assert.Equal(t, []ColorAttribute{Reset}, Level(42).ColorAttributes())
	assert.Equal(t, []ColorAttribute{Reset}, UNDEFINED.ColorAttributes())
}

func TestFlagsFromString(t *testing.T) {
	assert.Equal(t, Ldate|Ltime, FlagsFromString("date, time"))
	assert.Equal(t, LstdFlags, FlagsFromString("stdflags"))
	assert.Equal(t, -1, FlagsFromString(""))
	assert.Equal(t, -1, FlagsFromString("none, bogus"))
	assert.Equal(t, Llevel|LUTC, FlagsFromString("level utc"))
}

type stringerArg struct{}

func (stringerArg) LogString() string {
	return "<stringer>"
}

func TestLoggerKeepsArguments(t *testing.T) {
	out := &bytes.Buffer{}
	l := NewLogger(out, WriterMode{Level: INFO, Flags: -1})

	arg := stringerArg{}
	args := []any{arg, 1}
	l.Info("%s %d", args...)
	assert.Equal(t, "<stringer> 1\n", out.String())
	assert.Equal(t, arg, args[0])
	assert.Equal(t, 1, args[1])
}
