// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package commitstatus

// CommitStatusState holds the state of a commit status as the git service displays it
type CommitStatusState string //nolint:revive // export stutter

const (
	// CommitStatusPending is for when the CommitStatus is Pending
	CommitStatusPending CommitStatusState = "pending"
	// CommitStatusSuccess is for when the CommitStatus is Success
	CommitStatusSuccess CommitStatusState = "success"
	// CommitStatusError is for when the CommitStatus is Error
	CommitStatusError CommitStatusState = "error"
	// CommitStatusFailure is for when the CommitStatus is Failure
	CommitStatusFailure CommitStatusState = "failure"
)

func (css CommitStatusState) String() string {
	return string(css)
}

// IsPending represents if commit status state is pending
func (css CommitStatusState) IsPending() bool {
	return css == CommitStatusPending
}

// IsSuccess represents if commit status state is success
func (css CommitStatusState) IsSuccess() bool {
	return css == CommitStatusSuccess
}

// IsError represents if commit status state is error
func (css CommitStatusState) IsError() bool {
	return css == CommitStatusError
}

// IsFailure represents if commit status state is failure
func (css CommitStatusState) IsFailure() bool {
	return css == CommitStatusFailure
}

type CommitStatusStates []CommitStatusState //nolint:revive // export stutter

// Combine folds the states of several CI services into one:
// failure if any of them report error or failure,
// pending if there are no states or one of them is pending,
// success if all of them succeeded.
func (css CommitStatusStates) Combine() CommitStatusState {
	successCnt := 0
	for _, state := range css {
		switch {
		case state.IsError() || state.IsFailure():
			return CommitStatusFailure
		case state.IsPending():
		case state.IsSuccess():
			successCnt++
		}
	}
	if successCnt > 0 && successCnt == len(css) {
		return CommitStatusSuccess
	}
	return CommitStatusPending
}
