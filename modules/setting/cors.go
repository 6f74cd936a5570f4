// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"time"

	"code.gitea.io/cilinks/modules/log"
)

// CORSConfig defines CORS settings of the api routes
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string
	Methods          []string
	MaxAge           time.Duration
	AllowCredentials bool
	Headers          []string
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD"},
	MaxAge:      10 * time.Minute,
	Headers:     []string{"Content-Type"},
}

func loadCorsFrom(rootCfg ConfigProvider) error {
	if err := rootCfg.Section("cors").MapTo(&CORSConfig); err != nil {
		return fmt.Errorf("failed to map cors settings: %w", err)
	}
	if CORSConfig.Enabled {
		log.Info("CORS Service Enabled")
	}
	return nil
}
