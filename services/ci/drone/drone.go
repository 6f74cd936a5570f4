// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package drone links commits to the builds of a Drone CI server.
package drone

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"code.gitea.io/cilinks/modules/commitstatus"
	"code.gitea.io/cilinks/modules/json"
	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/metrics"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/modules/util"
	"code.gitea.io/cilinks/services/ci"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// Name is the vendor identifier of the Drone service
const Name = "drone"

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

// Config holds the settings of one Drone integration
type Config struct {
	Active bool
	// URL is the Drone server, eg: "http://drone.example.com"
	URL string
	// Repo is the repository as Drone knows it, eg: "github.com/foo/bar"
	Repo  string
	Token string

	SkipTLSVerify bool
	Timeout       time.Duration
	// BranchFilter is a glob limiting the pushes forwarded to Drone, empty means all branches
	BranchFilter  string
	DefaultBranch string
}

// ConfigFromSetting returns the [ci.drone] settings
func ConfigFromSetting() Config {
	s := setting.CI.Drone
	return Config{
		Active:        s.Active,
		URL:           s.URL,
		Repo:          s.Repo,
		Token:         s.Token,
		SkipTLSVerify: s.SkipTLSVerify,
		Timeout:       s.Timeout,
		BranchFilter:  s.BranchFilter,
		DefaultBranch: s.DefaultBranch,
	}
}

// Validate checks that an active integration has everything it needs to talk to Drone
func (c Config) Validate() error {
	if !c.Active {
		return nil
	}
	switch {
	case strings.TrimSpace(c.URL) == "":
		return util.NewInvalidArgumentErrorf("drone url is required")
	case strings.TrimSpace(c.Repo) == "":
		return util.NewInvalidArgumentErrorf("drone repo is required")
	case strings.TrimSpace(c.Token) == "":
		return util.NewInvalidArgumentErrorf("drone token is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return util.NewInvalidArgumentErrorf("drone url %q is not a valid http(s) url", c.URL)
	}
	return nil
}

// Service implements ci.BuildInfoProvider for Drone
type Service struct {
	cfg          Config
	client       *http.Client
	branchFilter glob.Glob
}

var _ ci.BuildInfoProvider = (*Service)(nil)

// NewService validates cfg and creates the Drone service
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")

	s := &Service{cfg: cfg}
	if cfg.BranchFilter != "" && cfg.BranchFilter != "*" {
		g, err := glob.Compile(cfg.BranchFilter)
		if err != nil {
			return nil, util.NewInvalidArgumentErrorf("invalid drone branch filter %q: %v", cfg.BranchFilter, err)
		}
		s.branchFilter = g
	}

	if cfg.SkipTLSVerify {
		log.Warn("Drone: TLS certificate verification is disabled for %s", cfg.URL)
	}
	s.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SkipTLSVerify}, //nolint:gosec // opt-in by SKIP_TLS_VERIFY
			Proxy:           http.ProxyFromEnvironment,
		},
	}
	return s, nil
}

func (s *Service) Name() string {
	return Name
}

func (s *Service) Title() string {
	return "Drone"
}

func (s *Service) Description() string {
	return "Open source Continuous Integration platform built on docker"
}

// Help is shown next to the settings form
func (s *Service) Help() string {
	return "The access token is available on your Drone profile page."
}

func (s *Service) Fields() []ci.Field {
	return []ci.Field{
		{Type: "text", Name: "drone_url", Placeholder: "http://drone.example.com"},
		{Type: "text", Name: "repo", Placeholder: "github.com/foo/bar"},
		{Type: "text", Name: "token", Placeholder: "Drone project specific token."},
	}
}

func (s *Service) SupportedEvents() []string {
	return []string{"push"}
}

// BuildsPath is the build summary page of the repository
func (s *Service) BuildsPath() string {
	return s.cfg.URL + "/" + util.PathEscapeSegments(s.cfg.Repo)
}

// StatusImagePath is the badge of the given branch, the configured default branch when empty
func (s *Service) StatusImagePath(defaultBranch string) string {
	if defaultBranch == "" {
		defaultBranch = s.cfg.DefaultBranch
	}
	return fmt.Sprintf("%s/api/badge/%s/status.svg?branch=%s", s.cfg.URL, util.PathEscapeSegments(s.cfg.Repo), url.QueryEscape(defaultBranch))
}

func (s *Service) withToken(apiPath string) string {
	return s.cfg.URL + apiPath + "?" + url.Values{"access_token": []string{s.cfg.Token}}.Encode()
}

func (s *Service) buildInfoURL(sha, ref string) string {
	return s.withToken(fmt.Sprintf("/api/repos/%s/branches/%s/commits/%s",
		util.PathEscapeSegments(s.cfg.Repo), util.PathEscapeSegments(ref), url.PathEscape(sha)))
}

// redact hides the access token carried in the url of a transport error
func (s *Service) redact(err error) error {
	var urlErr *url.Error
	if s.cfg.Token != "" && errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(s.cfg.Token), "******")
	}
	return err
}

// FetchBuildInfo requests the build of sha on ref. It never retries, transport failures and
// timeouts end up in BuildInfo.Err.
func (s *Service) FetchBuildInfo(ctx context.Context, sha, ref string) *ci.BuildInfo {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildInfoURL(sha, ref), nil)
	if err != nil {
		return &ci.BuildInfo{Err: fmt.Errorf("cannot create drone request: %w", s.redact(err))}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordCICall(Name, metrics.CIOperationBuildInfo, 0, time.Since(start))
		err = s.redact(err)
		log.Warn("Drone: unable to fetch build of %s on %s: %v", sha, ref, err)
		return &ci.BuildInfo{Err: err}
	}
	defer resp.Body.Close()

	info := &ci.BuildInfo{StatusCode: resp.StatusCode}
	info.Body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		info.Err = fmt.Errorf("read drone response: %w", err)
	}
	metrics.RecordCICall(Name, metrics.CIOperationBuildInfo, resp.StatusCode, time.Since(start))
	log.Trace("Drone: build of %s on %s answered %d", sha, ref, resp.StatusCode)
	return info
}

type buildResponse struct {
	Status string `json:"status"`
}

// CommitStatus maps the Drone response onto a BuildStatus.
// 404 means the build was not created yet, anything unexpected is an error.
func (s *Service) CommitStatus(info *ci.BuildInfo) commitstatus.BuildStatus {
	if info == nil || info.Err != nil {
		return commitstatus.BuildStatusError
	}
	switch info.StatusCode {
	case http.StatusNotFound:
		return commitstatus.BuildStatusPending
	case http.StatusOK:
	default:
		return commitstatus.BuildStatusError
	}

	var build buildResponse
	if err := json.Unmarshal(info.Body, &build); err != nil {
		log.Debug("Drone: malformed build response: %v", err)
		return commitstatus.BuildStatusError
	}
	switch {
	case strings.EqualFold(build.Status, "started"):
		return commitstatus.BuildStatusRunning
	case strings.EqualFold(build.Status, string(commitstatus.BuildStatusRunning)), build.Status != strings.TrimSpace(build.Status):
		// drone never reports these
		return commitstatus.BuildStatusError
	}
	return commitstatus.ParseBuildStatus(build.Status)
}

// BuildPage links to the build of sha when Drone knows it, to the build summary otherwise
func (s *Service) BuildPage(info *ci.BuildInfo, sha, ref string) string {
	if !info.OK() {
		return s.BuildsPath()
	}
	return s.BuildsPath() + "/" + util.PathEscapeSegments(ref) + "/" + url.PathEscape(sha)
}

// Execute tells Drone about a push. Other events, inactive integrations and
// branches outside the filter are ignored.
func (s *Service) Execute(ctx context.Context, event *ci.PushEvent) error {
	if event == nil || !s.cfg.Active || !slices.Contains(s.SupportedEvents(), event.ObjectKind) {
		if event != nil {
			metrics.RecordHookEvent(Name, event.ObjectKind, false)
		}
		return nil
	}
	if s.branchFilter != nil && !s.branchFilter.Match(event.Branch()) {
		log.Trace("Drone: branch %q does not match filter %q", event.Branch(), s.cfg.BranchFilter)
		metrics.RecordHookEvent(Name, event.ObjectKind, false)
		return nil
	}
	metrics.RecordHookEvent(Name, event.ObjectKind, true)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.withToken("/api/user"), nil)
	if err != nil {
		return fmt.Errorf("cannot create drone request: %w", s.redact(err))
	}
	req.Header.Set("X-Gitea-Delivery", uuid.New().String())
	req.Header.Set("X-Gitea-Event", event.ObjectKind)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordCICall(Name, metrics.CIOperationNotify, 0, time.Since(start))
		return fmt.Errorf("unable to notify drone about %s: %w", event.Ref, s.redact(err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	metrics.RecordCICall(Name, metrics.CIOperationNotify, resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return util.NewUnavailableErrorf("drone answered %d to the %s notification", resp.StatusCode, event.ObjectKind)
	}
	log.Trace("Drone: notified about %s %s", event.ObjectKind, event.Ref)
	return nil
}
