// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ci

import (
	"context"
	"strings"

	"code.gitea.io/cilinks/modules/commitstatus"
)

// BuildInfo is the response of a CI server for one commit.
// It is returned by FetchBuildInfo and passed to the derivations, nothing is cached behind the caller's back.
type BuildInfo struct {
	StatusCode int
	Body       []byte
	// Err is set when no complete response could be read
	Err error
}

// OK reports whether the server answered with HTTP 200
func (b *BuildInfo) OK() bool {
	return b != nil && b.Err == nil && b.StatusCode == 200
}

// PushEvent is the payload handed over by the webhook dispatcher
type PushEvent struct {
	ObjectKind string `json:"object_kind"`
	Ref        string `json:"ref"`
	Before     string `json:"before"`
	After      string `json:"after"`
}

// Branch returns the pushed branch name, or "" when the ref is not a branch
func (e *PushEvent) Branch() string {
	if e == nil {
		return ""
	}
	branch, ok := strings.CutPrefix(e.Ref, "refs/heads/")
	if !ok {
		return ""
	}
	return branch
}

// Field describes one setting rendered in the integration's settings form
type Field struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
}

// BuildInfoProvider is implemented by each remote CI vendor
type BuildInfoProvider interface {
	// Name is the vendor identifier, eg: "drone"
	Name() string
	Title() string
	Description() string
	Fields() []Field
	SupportedEvents() []string

	// FetchBuildInfo queries the CI server, failures are reported in BuildInfo.Err
	FetchBuildInfo(ctx context.Context, sha, ref string) *BuildInfo
	CommitStatus(info *BuildInfo) commitstatus.BuildStatus
	BuildPage(info *BuildInfo, sha, ref string) string
	BuildsPath() string
	StatusImagePath(defaultBranch string) string

	// Execute is invoked for every hook event, it is a no-op for unsupported events
	Execute(ctx context.Context, event *PushEvent) error
}

// CommitLookup holds everything derived from a single fetch
type CommitLookup struct {
	Provider  string                         `json:"provider"`
	SHA       string                         `json:"sha"`
	Ref       string                         `json:"ref"`
	Status    commitstatus.BuildStatus       `json:"status"`
	State     commitstatus.CommitStatusState `json:"state"`
	BuildPage string                         `json:"build_page"`
	Info      *BuildInfo                     `json:"-"`
}

// Lookup fetches the build of sha once and derives its status and build page from that response
func Lookup(ctx context.Context, p BuildInfoProvider, sha, ref string) *CommitLookup {
	info := p.FetchBuildInfo(ctx, sha, ref)
	status := p.CommitStatus(info)
	return &CommitLookup{
		Provider:  p.Name(),
		SHA:       sha,
		Ref:       ref,
		Status:    status,
		State:     status.ToCommitStatusState(),
		BuildPage: p.BuildPage(info, sha, ref),
		Info:      info,
	}
}
