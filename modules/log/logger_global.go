// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[LoggerImpl]

func init() {
	defaultLogger.Store(NewConsoleLogger(INFO, LstdFlags))
}

// GetLogger returns the default logger
func GetLogger() *LoggerImpl {
	return defaultLogger.Load()
}

// SetLogger replaces the default logger
func SetLogger(l *LoggerImpl) {
	defaultLogger.Store(l)
}

// GetLevel returns the minimum logger level
func GetLevel() Level {
	return GetLogger().GetLevel()
}

func Log(skip int, level Level, format string, v ...any) {
	GetLogger().Log(skip+1, level, format, v...)
}

func Trace(format string, v ...any) {
	Log(1, TRACE, format, v...)
}

func Debug(format string, v ...any) {
	Log(1, DEBUG, format, v...)
}

func Info(format string, v ...any) {
	Log(1, INFO, format, v...)
}

func Warn(format string, v ...any) {
	Log(1, WARN, format, v...)
}

func Error(format string, v ...any) {
	Log(1, ERROR, format, v...)
}

var OsExiter = os.Exit

// Fatal records fatal log and exit process
func Fatal(format string, v ...any) {
	Log(1, FATAL, format, v...)
	OsExiter(1)
}
