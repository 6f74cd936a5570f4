// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package regexplru caches compiled expressions built at runtime from settings,
// such as the public git host patterns used by the submodule link resolver.
package regexplru

import (
	"regexp"
	"sync"

	"code.gitea.io/cilinks/modules/log"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSize = 256

var (
	lruCache *lru.Cache[string, any]
	initOnce sync.Once
)

func cache() *lru.Cache[string, any] {
	initOnce.Do(func() {
		var err error
		lruCache, err = lru.New[string, any](defaultSize)
		if err != nil {
			log.Fatal("failed to new LRU cache, err: %v", err)
		}
	})
	return lruCache
}

// GetCompiled works like regexp.Compile, the compiled expr or error is stored in LRU cache
func GetCompiled(expr string) (r *regexp.Regexp, err error) {
	c := cache()
	v, ok := c.Get(expr)
	if !ok {
		r, err = regexp.Compile(expr)
		if err != nil {
			c.Add(expr, err)
			return nil, err
		}
		c.Add(expr, r)
		return r, nil
	}
	switch v := v.(type) {
	case *regexp.Regexp:
		return v, nil
	case error:
		return nil, v
	}
	panic("impossible")
}

// FindStringSubmatch compiles expr through the cache and matches s against it.
// An invalid expression is logged and reported as no match.
func FindStringSubmatch(expr, s string) []string {
	r, err := GetCompiled(expr)
	if err != nil {
		log.Error("invalid expression %q: %v", expr, err)
		return nil
	}
	return r.FindStringSubmatch(s)
}
