// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"slices"
	"strings"
)

var defaultPublicHosts = []string{"github.com", "gitlab.com"}

// Submodule settings
var Submodule = struct {
	// PublicHosts are hosts whose "owner/repo" URLs are linked to https://{host}/owner/repo
	PublicHosts []string
}{
	PublicHosts: slices.Clone(defaultPublicHosts),
}

func loadSubmoduleFrom(rootCfg ConfigProvider) {
	Submodule.PublicHosts = slices.Clone(defaultPublicHosts)

	sec := rootCfg.Section("git.submodule")
	hosts := sec.Key("PUBLIC_HOSTS").Strings(",")
	if len(hosts) == 0 {
		return
	}
	Submodule.PublicHosts = Submodule.PublicHosts[:0]
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			Submodule.PublicHosts = append(Submodule.PublicHosts, h)
		}
	}
}
