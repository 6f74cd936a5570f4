// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-git/v5/config"
)

// SubModule is a submodule declared in .gitmodules
type SubModule struct {
	Name string
	Path string
	URL  string
}

// SubModules holds the submodules of a tree, keyed by path
type SubModules struct {
	paths   []string
	modules map[string]*SubModule
}

// Get returns the submodule checked out at path
func (s *SubModules) Get(path string) (*SubModule, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.modules[path]
	return m, ok
}

// Len returns the number of submodules
func (s *SubModules) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// List returns the submodules ordered by path
func (s *SubModules) List() []*SubModule {
	if s == nil {
		return nil
	}
	list := make([]*SubModule, 0, len(s.paths))
	for _, p := range s.paths {
		list = append(list, s.modules[p])
	}
	return list
}

// ParseSubModules reads the content of a .gitmodules file.
// Entries without a path or url are skipped.
func ParseSubModules(rd io.Reader) (*SubModules, error) {
	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read .gitmodules: %w", err)
	}

	cfg := config.NewModules()
	if err := cfg.Unmarshal(content); err != nil {
		return nil, fmt.Errorf("parse .gitmodules: %w", err)
	}

	subModules := &SubModules{modules: make(map[string]*SubModule, len(cfg.Submodules))}
	for name, sm := range cfg.Submodules {
		if sm.Path == "" || sm.URL == "" {
			continue
		}
		if _, ok := subModules.modules[sm.Path]; ok {
			continue
		}
		subModules.modules[sm.Path] = &SubModule{Name: name, Path: sm.Path, URL: sm.URL}
		subModules.paths = append(subModules.paths, sm.Path)
	}
	sort.Strings(subModules.paths)
	return subModules, nil
}
