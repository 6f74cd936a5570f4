// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.gitea.io/cilinks/modules/log"
)

// Log settings
var Log struct {
	Level log.Level
	Flags int
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString("Info"))
	Log.Flags = log.FlagsFromString(sec.Key("FLAGS").MustString("stdflags"))

	log.SetLogger(log.NewConsoleLogger(Log.Level, Log.Flags))
}
