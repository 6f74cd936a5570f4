// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package drone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"code.gitea.io/cilinks/modules/commitstatus"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/modules/test"
	"code.gitea.io/cilinks/modules/util"
	"code.gitea.io/cilinks/services/ci"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSHA = "2ab7834c"
	testRef = "master"
)

func newTestService(t *testing.T, serverURL string) *Service {
	t.Helper()
	s, err := NewService(Config{
		Active:        true,
		URL:           serverURL,
		Repo:          "github.com/foo/bar",
		Token:         "secret-token",
		DefaultBranch: "main",
	})
	require.NoError(t, err)
	return s
}

func buildServer(t *testing.T, status int, body string) *httptest.Server {
	return test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/repos/github.com/foo/bar/branches/"+testRef+"/commits/"+testSHA, r.URL.Path)
		assert.Equal(t, "secret-token", r.URL.Query().Get("access_token"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())

	cases := []Config{
		{Active: true, Repo: "foo/bar", Token: "t"},
		{Active: true, URL: "http://drone", Token: "t"},
		{Active: true, URL: "http://drone", Repo: "foo/bar"},
		{Active: true, URL: "ftp://drone", Repo: "foo/bar", Token: "t"},
	}
	for _, c := range cases {
		err := c.Validate()
		assert.True(t, errors.Is(err, util.ErrInvalidArgument), "%+v: %v", c, err)
		_, err = NewService(c)
		assert.Error(t, err)
	}
}

func TestCommitStatus(t *testing.T) {
	cases := []struct {
		status   int
		body     string
		expected commitstatus.BuildStatus
	}{
		{http.StatusOK, `{"status":"success"}`, commitstatus.BuildStatusSuccess},
		{http.StatusOK, `{"status":"SUCCESS","number":4}`, commitstatus.BuildStatusSuccess},
		{http.StatusOK, `{"status":"failed"}`, commitstatus.BuildStatusFailed},
		{http.StatusOK, `{"status":"Pending"}`, commitstatus.BuildStatusPending},
		{http.StatusOK, `{"status":"started"}`, commitstatus.BuildStatusRunning},
		{http.StatusOK, `{"status":"running"}`, commitstatus.BuildStatusError},
		{http.StatusOK, `{"status":"Started"}`, commitstatus.BuildStatusRunning},
		{http.StatusOK, `{"status":" success"}`, commitstatus.BuildStatusError},
		{http.StatusOK, `{"status":""}`, commitstatus.BuildStatusError},
		{http.StatusOK, `{"status":"killed"}`, commitstatus.BuildStatusError},
		{http.StatusOK, `{}`, commitstatus.BuildStatusError},
		{http.StatusOK, `not json`, commitstatus.BuildStatusError},
		{http.StatusNotFound, `{"status":"success"}`, commitstatus.BuildStatusPending},
		{http.StatusInternalServerError, `{"status":"success"}`, commitstatus.BuildStatusError},
		{http.StatusUnauthorized, ``, commitstatus.BuildStatusError},
	}
	for _, c := range cases {
		srv := buildServer(t, c.status, c.body)
		s := newTestService(t, srv.URL)
		info := s.FetchBuildInfo(context.Background(), testSHA, testRef)
		require.NoError(t, info.Err)
		assert.Equal(t, c.status, info.StatusCode)
		assert.Equal(t, c.expected, s.CommitStatus(info), "%d %s", c.status, c.body)
	}
}

func TestCommitStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	s := newTestService(t, srv.URL)
	info := s.FetchBuildInfo(context.Background(), testSHA, testRef)
	require.Error(t, info.Err)
	assert.NotContains(t, info.Err.Error(), "secret-token")
	assert.Equal(t, commitstatus.BuildStatusError, s.CommitStatus(info))
	assert.Equal(t, commitstatus.BuildStatusError, s.CommitStatus(nil))
}

func TestCommitStatusTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	s, err := NewService(Config{Active: true, URL: srv.URL, Repo: "foo/bar", Token: "t", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	info := s.FetchBuildInfo(context.Background(), testSHA, testRef)
	assert.Error(t, info.Err)
	assert.Equal(t, commitstatus.BuildStatusError, s.CommitStatus(info))
	assert.Equal(t, srv.URL+"/foo/bar", s.BuildPage(info, testSHA, testRef))
}

func TestFetchBuildInfoDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	s := newTestService(t, srv.URL)
	info := s.FetchBuildInfo(context.Background(), testSHA, testRef)
	assert.Equal(t, commitstatus.BuildStatusError, s.CommitStatus(info))
	assert.Equal(t, int32(1), calls.Load())
}

func TestBuildPage(t *testing.T) {
	srv := buildServer(t, http.StatusOK, `{"status":"success"}`)
	s := newTestService(t, srv.URL+"/")

	info := s.FetchBuildInfo(context.Background(), testSHA, testRef)
	assert.Equal(t, srv.URL+"/github.com/foo/bar/master/2ab7834c", s.BuildPage(info, testSHA, testRef))

	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		assert.Equal(t, srv.URL+"/github.com/foo/bar", s.BuildPage(&ci.BuildInfo{StatusCode: status}, testSHA, testRef))
	}
	assert.Equal(t, srv.URL+"/github.com/foo/bar", s.BuildsPath())
}

func TestStatusImagePath(t *testing.T) {
	s := newTestService(t, "http://drone.example.com")
	assert.Equal(t, "http://drone.example.com/api/badge/github.com/foo/bar/status.svg?branch=develop", s.StatusImagePath("develop"))
	assert.Equal(t, "http://drone.example.com/api/badge/github.com/foo/bar/status.svg?branch=main", s.StatusImagePath(""))
}

func TestMetadata(t *testing.T) {
	s := newTestService(t, "http://drone.example.com")
	assert.Equal(t, "drone", s.Name())
	assert.Equal(t, "Drone", s.Title())
	assert.NotEmpty(t, s.Description())
	assert.NotEmpty(t, s.Help())
	assert.Equal(t, []string{"push"}, s.SupportedEvents())
	require.Len(t, s.Fields(), 3)
	assert.Equal(t, "drone_url", s.Fields()[0].Name)
}

func TestExecute(t *testing.T) {
	var calls atomic.Int32
	srv := test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/user", r.URL.Path)
		assert.Equal(t, "secret-token", r.URL.Query().Get("access_token"))
		assert.NotEmpty(t, r.Header.Get("X-Gitea-Delivery"))
		assert.Equal(t, "push", r.Header.Get("X-Gitea-Event"))
		w.WriteHeader(http.StatusOK)
	})

	s := newTestService(t, srv.URL)
	ctx := context.Background()

	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "issue"}))
	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "tag_push", Ref: "refs/tags/v1"}))
	assert.NoError(t, s.Execute(ctx, nil))
	assert.Equal(t, int32(0), calls.Load())

	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "push", Ref: "refs/heads/main"}))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteBranchFilter(t *testing.T) {
	var calls atomic.Int32
	srv := test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	s, err := NewService(Config{Active: true, URL: srv.URL, Repo: "foo/bar", Token: "t", BranchFilter: "{main,release/*}"})
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "push", Ref: "refs/heads/feature/x"}))
	assert.Equal(t, int32(0), calls.Load())
	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "push", Ref: "refs/heads/release/1.0"}))
	assert.NoError(t, s.Execute(ctx, &ci.PushEvent{ObjectKind: "push", Ref: "refs/heads/main"}))
	assert.Equal(t, int32(2), calls.Load())
}

func TestExecuteFailures(t *testing.T) {
	srv := test.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	s := newTestService(t, srv.URL)
	err := s.Execute(context.Background(), &ci.PushEvent{ObjectKind: "push", Ref: "refs/heads/main"})
	assert.True(t, errors.Is(err, util.ErrUnavailable))

	inactive, err := NewService(Config{URL: srv.URL})
	require.NoError(t, err)
	assert.NoError(t, inactive.Execute(context.Background(), &ci.PushEvent{ObjectKind: "push"}))
}

func TestConfigFromSetting(t *testing.T) {
	defer test.MockVariableValue(&setting.CI)()
	setting.CI.Drone = setting.DroneSettings{
		Active:        true,
		URL:           "https://drone.example.com",
		Repo:          "foo/bar",
		Token:         "t",
		SkipTLSVerify: true,
		Timeout:       time.Second,
		BranchFilter:  "main",
		DefaultBranch: "main",
	}

	cfg := ConfigFromSetting()
	assert.Equal(t, Config{
		Active:        true,
		URL:           "https://drone.example.com",
		Repo:          "foo/bar",
		Token:         "t",
		SkipTLSVerify: true,
		Timeout:       time.Second,
		BranchFilter:  "main",
		DefaultBranch: "main",
	}, cfg)

	s, err := NewService(cfg)
	require.NoError(t, err)
	assert.True(t, s.client.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)
}
