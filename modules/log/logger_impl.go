// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// WriterMode holds the options used to create a LoggerImpl
type WriterMode struct {
	Level    Level
	Prefix   string
	Colorize bool
	Flags    int
}

// LoggerImpl writes formatted events to an io.Writer
type LoggerImpl struct {
	mu   sync.Mutex
	out  io.Writer
	mode WriterMode
}

var _ Logger = (*LoggerImpl)(nil)

// NewLogger creates a logger writing to out. Flags of 0 means LstdFlags, -1 means no prefix at all.
func NewLogger(out io.Writer, mode WriterMode) *LoggerImpl {
	switch mode.Flags {
	case 0:
		mode.Flags = LstdFlags
	case -1:
		mode.Flags = 0
	}
	if mode.Level == UNDEFINED {
		mode.Level = INFO
	}
	return &LoggerImpl{out: out, mode: mode}
}

// NewConsoleLogger creates a logger writing to stdout, colorized when stdout is a terminal
func NewConsoleLogger(level Level, flags int) *LoggerImpl {
	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewLogger(os.Stdout, WriterMode{Level: level, Flags: flags, Colorize: colorize})
}

// GetLevel returns the logging level for this logger
func (l *LoggerImpl) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode.Level
}

// SetLevel changes the logging level for this logger
func (l *LoggerImpl) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode.Level = level
}

// LevelEnabled checks if the level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	return l.GetLevel() <= level
}

// Log prepares the log event, if the level matches, the event will be written
func (l *LoggerImpl) Log(skip int, level Level, format string, v ...any) {
	if !l.LevelEnabled(level) {
		return
	}

	event := &event{level: level, time: time.Now()}
	if pc, filename, line, ok := runtime.Caller(skip + 1); ok {
		event.filename = filename
		event.line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			event.caller = fn.Name() + "()"
		}
	}

	if len(v) == 0 {
		event.msg = format
	} else {
		args := make([]any, len(v))
		for i, arg := range v {
			if s, ok := arg.(LogStringer); ok {
				args[i] = s.LogString()
			} else {
				args[i] = arg
			}
		}
		event.msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	var buf []byte
	l.createMsg(&buf, event)
	_, _ = l.out.Write(buf)
}

func (l *LoggerImpl) Trace(format string, v ...any) {
	l.Log(1, TRACE, format, v...)
}

func (l *LoggerImpl) Debug(format string, v ...any) {
	l.Log(1, DEBUG, format, v...)
}

func (l *LoggerImpl) Info(format string, v ...any) {
	l.Log(1, INFO, format, v...)
}

func (l *LoggerImpl) Warn(format string, v ...any) {
	l.Log(1, WARN, format, v...)
}

func (l *LoggerImpl) Error(format string, v ...any) {
	l.Log(1, ERROR, format, v...)
}

type event struct {
	level    Level
	msg      string
	caller   string
	filename string
	line     int
	time     time.Time
}

// itoa is a cheap integer to fixed-width decimal conversion
func itoa(buf *[]byte, i, wid int) {
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

func (l *LoggerImpl) createMsg(buf *[]byte, event *event) {
	flags := l.mode.Flags
	colorize := l.mode.Colorize

	*buf = append(*buf, l.mode.Prefix...)
	t := event.time
	if flags&(Ldate|Ltime|Lmicroseconds) != 0 {
		if colorize {
			*buf = append(*buf, fgCyanBytes...)
		}
		if flags&LUTC != 0 {
			t = t.UTC()
		}
		if flags&Ldate != 0 {
			year, month, day := t.Date()
			itoa(buf, year, 4)
			*buf = append(*buf, '/')
			itoa(buf, int(month), 2)
			*buf = append(*buf, '/')
			itoa(buf, day, 2)
			*buf = append(*buf, ' ')
		}
		if flags&(Ltime|Lmicroseconds) != 0 {
			hour, min, sec := t.Clock()
			itoa(buf, hour, 2)
			*buf = append(*buf, ':')
			itoa(buf, min, 2)
			*buf = append(*buf, ':')
			itoa(buf, sec, 2)
			if flags&Lmicroseconds != 0 {
				*buf = append(*buf, '.')
				itoa(buf, t.Nanosecond()/1e3, 6)
			}
			*buf = append(*buf, ' ')
		}
		if colorize {
			*buf = append(*buf, resetBytes...)
		}
	}
	if flags&(Lshortfile|Llongfile) != 0 {
		if colorize {
			*buf = append(*buf, fgGreenBytes...)
		}
		file := event.filename
		if flags&Lmedfile == Lmedfile {
			startIndex := len(file) - 20
			if startIndex > 0 {
				file = "..." + file[startIndex:]
			}
		} else if flags&Lshortfile != 0 {
			startIndex := strings.LastIndexByte(file, '/')
			if startIndex > 0 && startIndex < len(file) {
				file = file[startIndex+1:]
			}
		}
		*buf = append(*buf, file...)
		*buf = append(*buf, ':')
		itoa(buf, event.line, -1)
		if flags&(Lfuncname|Lshortfuncname) != 0 {
			*buf = append(*buf, ':')
		} else {
			if colorize {
				*buf = append(*buf, resetBytes...)
			}
			*buf = append(*buf, ' ')
		}
	}
	if flags&(Lfuncname|Lshortfuncname) != 0 {
		if colorize {
			*buf = append(*buf, fgGreenBytes...)
		}
		funcname := event.caller
		if flags&Lshortfuncname != 0 {
			lastIndex := strings.LastIndexByte(funcname, '.')
			if lastIndex > 0 && len(funcname) > lastIndex+1 {
				funcname = funcname[lastIndex+1:]
			}
		}
		*buf = append(*buf, funcname...)
		if colorize {
			*buf = append(*buf, resetBytes...)
		}
		*buf = append(*buf, ' ')
	}
	if flags&(Llevel|Llevelinitial) != 0 {
		level := strings.ToUpper(event.level.String())
		if colorize {
			*buf = append(*buf, ColorBytes(event.level.ColorAttributes()...)...)
		}
		*buf = append(*buf, '[')
		if flags&Llevelinitial != 0 {
			*buf = append(*buf, level[0])
		} else {
			*buf = append(*buf, level...)
		}
		*buf = append(*buf, ']')
		if colorize {
			*buf = append(*buf, resetBytes...)
		}
		*buf = append(*buf, ' ')
	}

	// prevent log spoofing: continuation lines are indented
	msg := strings.TrimSuffix(event.msg, "\n")
	lines := bytes.Split([]byte(msg), []byte("\n"))
	*buf = append(*buf, lines[0]...)
	for _, line := range lines[1:] {
		*buf = append(*buf, "\n        "...)
		*buf = append(*buf, line...)
	}
	*buf = append(*buf, '\n')
}
