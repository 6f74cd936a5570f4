// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ci

import (
	"context"
	"sort"
	"sync"

	"code.gitea.io/cilinks/modules/commitstatus"
	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/util"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentLookups = 4

// Registry holds the CI services enabled for a repository, keyed by vendor
type Registry struct {
	mu        sync.RWMutex
	providers map[string]BuildInfoProvider
}

// NewRegistry creates a registry holding the given providers
func NewRegistry(providers ...BuildInfoProvider) *Registry {
	r := &Registry{providers: make(map[string]BuildInfoProvider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds p, replacing any provider of the same vendor
func (r *Registry) Register(p BuildInfoProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider of vendor
func (r *Registry) Get(vendor string) (BuildInfoProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[vendor]
	if !ok {
		return nil, util.NewNotExistErrorf("ci service %q is not registered", vendor)
	}
	return p, nil
}

// List returns the providers ordered by vendor
func (r *Registry) List() []BuildInfoProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]BuildInfoProvider, 0, len(r.providers))
	for _, p := range r.providers {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Dispatch hands event to every registered provider. Failures are logged and do not stop the others,
// the first one is returned.
func (r *Registry) Dispatch(ctx context.Context, event *PushEvent) error {
	var firstErr error
	for _, p := range r.List() {
		if err := p.Execute(ctx, event); err != nil {
			log.Error("Unable to deliver %s event to %s: %v", event.ObjectKind, p.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// CombinedStatus looks sha up in every registered provider concurrently and folds the results
func (r *Registry) CombinedStatus(ctx context.Context, sha, ref string) (commitstatus.CommitStatusState, []*CommitLookup) {
	providers := r.List()
	lookups := make([]*CommitLookup, len(providers))

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentLookups)
	for i, p := range providers {
		i, p := i, p
		eg.Go(func() error {
			lookups[i] = Lookup(ctx, p, sha, ref)
			return nil
		})
	}
	_ = eg.Wait() // Lookup reports failures in the result

	states := make(commitstatus.CommitStatusStates, 0, len(lookups))
	for _, l := range lookups {
		states = append(states, l.State)
	}
	return states.Combine(), lookups
}
