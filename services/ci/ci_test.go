// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package ci

import (
	"context"
	"errors"
	"testing"

	"code.gitea.io/cilinks/modules/commitstatus"
	"code.gitea.io/cilinks/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name    string
	status  commitstatus.BuildStatus
	err     error
	fetches int
	events  []*PushEvent
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Title() string { return f.name }
func (f *fakeProvider) Description() string { return "" }
func (f *fakeProvider) Fields() []Field { return nil }
func (f *fakeProvider) SupportedEvents() []string { return []string{"push"} }
func (f *fakeProvider) BuildsPath() string { return "https://" + f.name + "/builds" }

func (f *fakeProvider) FetchBuildInfo(_ context.Context, sha, ref string) *BuildInfo {
	f.fetches++
	return &BuildInfo{StatusCode: 200, Body: []byte(sha + "@" + ref)}
}

func (f *fakeProvider) CommitStatus(info *BuildInfo) commitstatus.BuildStatus {
	return f.status
}

func (f *fakeProvider) BuildPage(info *BuildInfo, sha, ref string) string {
	if !info.OK() {
		return f.BuildsPath()
	}
	return f.BuildsPath() + "/" + ref + "/" + sha
}

func (f *fakeProvider) StatusImagePath(branch string) string {
	return f.BuildsPath() + "/badge?branch=" + branch
}

func (f *fakeProvider) Execute(_ context.Context, event *PushEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func TestBuildInfoOK(t *testing.T) {
	var nilInfo *BuildInfo
	assert.False(t, nilInfo.OK())
	assert.False(t, (&BuildInfo{StatusCode: 404}).OK())
	assert.False(t, (&BuildInfo{StatusCode: 200, Err: errors.New("eof")}).OK())
	assert.True(t, (&BuildInfo{StatusCode: 200}).OK())
}

func TestPushEventBranch(t *testing.T) {
	assert.Equal(t, "main", (&PushEvent{Ref: "refs/heads/main"}).Branch())
	assert.Equal(t, "feature/x", (&PushEvent{Ref: "refs/heads/feature/x"}).Branch())
	assert.Equal(t, "", (&PushEvent{Ref: "refs/tags/v1.0"}).Branch())
	var e *PushEvent
	assert.Equal(t, "", e.Branch())
}

func TestLookup(t *testing.T) {
	p := &fakeProvider{name: "fake", status: commitstatus.BuildStatusRunning}
	l := Lookup(context.Background(), p, "abc", "main")

	assert.Equal(t, 1, p.fetches)
	assert.Equal(t, &CommitLookup{
		Provider:  "fake",
		SHA:       "abc",
		Ref:       "main",
		Status:    commitstatus.BuildStatusRunning,
		State:     commitstatus.CommitStatusPending,
		BuildPage: "https://fake/builds/main/abc",
		Info:      &BuildInfo{StatusCode: 200, Body: []byte("abc@main")},
	}, l)
}

func TestRegistry(t *testing.T) {
	a := &fakeProvider{name: "b-ci"}
	b := &fakeProvider{name: "a-ci"}
	r := NewRegistry(a, b)

	p, err := r.Get("b-ci")
	require.NoError(t, err)
	assert.Same(t, a, p)

	_, err = r.Get("travis")
	assert.True(t, errors.Is(err, util.ErrNotExist))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a-ci", list[0].Name())
	assert.Equal(t, "b-ci", list[1].Name())

	replacement := &fakeProvider{name: "b-ci"}
	r.Register(replacement)
	p, err = r.Get("b-ci")
	require.NoError(t, err)
	assert.Same(t, replacement, p)
	assert.Len(t, r.List(), 2)
}

func TestRegistryDispatch(t *testing.T) {
	errBoom := errors.New("boom")
	a := &fakeProvider{name: "a", err: errBoom}
	b := &fakeProvider{name: "b"}
	r := NewRegistry(a, b)

	event := &PushEvent{ObjectKind: "push", Ref: "refs/heads/main"}
	err := r.Dispatch(context.Background(), event)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []*PushEvent{event}, a.events)
	assert.Equal(t, []*PushEvent{event}, b.events)

	assert.NoError(t, NewRegistry().Dispatch(context.Background(), event))
}

func TestRegistryCombinedStatus(t *testing.T) {
	cases := []struct {
		statuses []commitstatus.BuildStatus
		expected commitstatus.CommitStatusState
	}{
		{nil, commitstatus.CommitStatusPending},
		{[]commitstatus.BuildStatus{commitstatus.BuildStatusSuccess}, commitstatus.CommitStatusSuccess},
		{[]commitstatus.BuildStatus{commitstatus.BuildStatusSuccess, commitstatus.BuildStatusRunning}, commitstatus.CommitStatusPending},
		{[]commitstatus.BuildStatus{commitstatus.BuildStatusSuccess, commitstatus.BuildStatusFailed}, commitstatus.CommitStatusFailure},
		{[]commitstatus.BuildStatus{commitstatus.BuildStatusPending, commitstatus.BuildStatusError}, commitstatus.CommitStatusFailure},
	}
	for _, c := range cases {
		r := NewRegistry()
		for i, s := range c.statuses {
			r.Register(&fakeProvider{name: string(rune('a' + i)), status: s})
		}
		state, lookups := r.CombinedStatus(context.Background(), "abc", "main")
		assert.Equal(t, c.expected, state, "%v", c.statuses)
		assert.Len(t, lookups, len(c.statuses))
	}
}
