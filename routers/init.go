// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routers

import (
	"fmt"

	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/services/ci"
	"code.gitea.io/cilinks/services/ci/drone"
)

// InitCIServices creates the registry of the CI services enabled in the settings
func InitCIServices() (*ci.Registry, error) {
	registry := ci.NewRegistry()

	if setting.CI.Drone.Active {
		s, err := drone.NewService(drone.ConfigFromSetting())
		if err != nil {
			return nil, fmt.Errorf("init drone service: %w", err)
		}
		registry.Register(s)
		log.Info("CI service %s enabled for %s", s.Title(), s.BuildsPath())
	}

	if len(registry.List()) == 0 {
		log.Warn("No CI service is enabled, only submodule links will be served")
	}
	return registry, nil
}
