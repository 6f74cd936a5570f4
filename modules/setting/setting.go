// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"os"

	"code.gitea.io/cilinks/modules/log"

	ini "gopkg.in/ini.v1"
)

// ConfigProvider represents a config provider
type ConfigProvider interface {
	Section(section string) *ini.Section
	GetSection(name string) (*ini.Section, error)
}

var _ ConfigProvider = (*ini.File)(nil)

// CustomConf is the path of the configuration file, it can be overridden by the --config flag
var CustomConf = "custom/conf/app.ini"

// NewConfigProviderFromData creates a new ConfigProvider from an ini formatted string
func NewConfigProviderFromData(configContent string) (ConfigProvider, error) {
	cfg, err := ini.Load([]byte(configContent))
	if err != nil {
		return nil, err
	}
	cfg.NameMapper = ini.SnackCase
	return cfg, nil
}

// NewConfigProviderFromFile loads the config file, a missing file yields an empty configuration
func NewConfigProviderFromFile(file string) (ConfigProvider, error) {
	cfg := ini.Empty()
	if file != "" {
		if _, err := os.Stat(file); err == nil {
			if err := cfg.Append(file); err != nil {
				return nil, fmt.Errorf("failed to load config file %q: %w", file, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to check if %q is a file: %w", file, err)
		} else {
			log.Warn("Config file %q does not exist, using defaults", file)
		}
	}
	cfg.NameMapper = ini.SnackCase
	return cfg, nil
}

// LoadSettings loads every section used by the services
func LoadSettings(rootCfg ConfigProvider) error {
	loadLogFrom(rootCfg)
	if err := loadServerFrom(rootCfg); err != nil {
		return err
	}
	loadSubmoduleFrom(rootCfg)
	if err := loadCorsFrom(rootCfg); err != nil {
		return err
	}
	return loadCIFrom(rootCfg)
}

// InitFromFile loads CustomConf (or the given file) into the package settings
func InitFromFile(file string) error {
	if file == "" {
		file = CustomConf
	}
	cfg, err := NewConfigProviderFromFile(file)
	if err != nil {
		return err
	}
	return LoadSettings(cfg)
}
