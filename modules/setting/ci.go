// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"time"
)

// DroneSettings is the [ci.drone] section
type DroneSettings struct {
	Active        bool          `ini:"ACTIVE"`
	URL           string        `ini:"URL"`
	Repo          string        `ini:"REPO"`
	Token         string        `ini:"TOKEN"`
	SkipTLSVerify bool          `ini:"SKIP_TLS_VERIFY"`
	Timeout       time.Duration `ini:"TIMEOUT"`
	BranchFilter  string        `ini:"BRANCH_FILTER"`
	DefaultBranch string        `ini:"DEFAULT_BRANCH"`
}

// CI settings
var CI = struct {
	Drone DroneSettings
}{
	Drone: DroneSettings{
		Timeout:       10 * time.Second,
		BranchFilter:  "*",
		DefaultBranch: "main",
	},
}

func loadCIFrom(rootCfg ConfigProvider) error {
	if err := rootCfg.Section("ci.drone").MapTo(&CI.Drone); err != nil {
		return fmt.Errorf("failed to map [ci.drone] settings: %w", err)
	}
	if CI.Drone.Timeout <= 0 {
		CI.Drone.Timeout = 10 * time.Second
	}
	return nil
}
