// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package commitstatus

import "strings"

// BuildStatus is the normalized outcome of a build as reported by an external CI server
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"
	BuildStatusFailed  BuildStatus = "failed"
	BuildStatusPending BuildStatus = "pending"
	BuildStatusRunning BuildStatus = "running"
	BuildStatusError   BuildStatus = "error"
)

func (bs BuildStatus) String() string {
	return string(bs)
}

// IsSuccess represents if the build succeeded
func (bs BuildStatus) IsSuccess() bool {
	return bs == BuildStatusSuccess
}

// IsFailed represents if the build failed
func (bs BuildStatus) IsFailed() bool {
	return bs == BuildStatusFailed
}

// IsPending represents if the build has not started yet
func (bs BuildStatus) IsPending() bool {
	return bs == BuildStatusPending
}

// IsRunning represents if the build is in progress
func (bs BuildStatus) IsRunning() bool {
	return bs == BuildStatusRunning
}

// IsError represents if the build status could not be determined
func (bs BuildStatus) IsError() bool {
	return bs == BuildStatusError
}

// ToCommitStatusState maps the build status onto the commit status vocabulary
func (bs BuildStatus) ToCommitStatusState() CommitStatusState {
	switch bs {
	case BuildStatusSuccess:
		return CommitStatusSuccess
	case BuildStatusFailed:
		return CommitStatusFailure
	case BuildStatusPending, BuildStatusRunning:
		return CommitStatusPending
	default:
		return CommitStatusError
	}
}

// ParseBuildStatus parses a status name case-insensitively, unknown names are BuildStatusError
func ParseBuildStatus(s string) BuildStatus {
	switch bs := BuildStatus(strings.ToLower(strings.TrimSpace(s))); bs {
	case BuildStatusSuccess, BuildStatusFailed, BuildStatusPending, BuildStatusRunning:
		return bs
	}
	return BuildStatusError
}
