// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"code.gitea.io/cilinks/modules/regexplru"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/modules/util"
)

// SubmoduleWebLink is the pair of links rendered for a submodule entry.
// TreeWebLink is empty when the URL is not recognized, RepoWebLink is then the literal URL.
type SubmoduleWebLink struct {
	RepoWebLink, TreeWebLink string
}

// SubmoduleReference is a submodule URL together with the commit it points to
type SubmoduleReference struct {
	URL      string
	ObjectID string
}

// WebLinks resolves the links of the referenced commit
func (r *SubmoduleReference) WebLinks(opts *SubmoduleLinkOptions) *SubmoduleWebLink {
	return SubmoduleLinks(r.URL, r.ObjectID, opts)
}

// RepoPathBuilder builds the site's own links for a repository
type RepoPathBuilder interface {
	RepoPath(owner, repo string) string
	TreePath(owner, repo, commitID string) string
}

// SubURLPathBuilder builds repository links below a sub-url such as "/gitea/root" (or "" for none)
type SubURLPathBuilder string

func (p SubURLPathBuilder) RepoPath(owner, repo string) string {
	return string(p) + "/" + util.PathEscapeSegments(owner) + "/" + url.PathEscape(repo)
}

func (p SubURLPathBuilder) TreePath(owner, repo, commitID string) string {
	return p.RepoPath(owner, repo) + "/tree/" + url.PathEscape(commitID)
}

// SiteConfig describes how clone URLs of this site look
type SiteConfig struct {
	// AppURL is the root url with a trailing '/', eg: "http://example.com:3000/gitea/root/"
	AppURL    string
	SSHUser   string
	SSHDomain string
	SSHPort   int
}

// SiteConfigFromSetting returns the SiteConfig of the running instance
func SiteConfigFromSetting() SiteConfig {
	return SiteConfig{
		AppURL:    setting.AppURL,
		SSHUser:   setting.SSH.User,
		SSHDomain: setting.SSH.Domain,
		SSHPort:   setting.SSH.Port,
	}
}

// cloneURLPrefixes returns the prefixes that come before "owner/repo.git" in this site's clone URLs
func (c SiteConfig) cloneURLPrefixes() []string {
	var prefixes []string
	if c.AppURL != "" {
		prefixes = append(prefixes, strings.TrimRight(c.AppURL, "/")+"/")
	}
	if c.SSHDomain != "" {
		user := c.SSHUser
		if user != "" {
			user += "@"
		}
		if c.SSHPort == 0 || c.SSHPort == 22 {
			prefixes = append(prefixes, user+c.SSHDomain+":", "ssh://"+user+c.SSHDomain+"/")
		} else {
			prefixes = append(prefixes, "ssh://"+user+c.SSHDomain+":"+strconv.Itoa(c.SSHPort)+"/")
		}
	}
	return prefixes
}

// Project is the repository the submodule is rendered in
type Project struct {
	// OwnerName is the full namespace path of the repository, eg: "group" or "group/subgroup"
	OwnerName string
	Name      string
}

// SubmoduleLinkOptions carries the collaborators used to resolve submodule links
type SubmoduleLinkOptions struct {
	Site  SiteConfig
	Paths RepoPathBuilder
	// Project is used to resolve relative URLs, relative URLs are not linked when it is nil
	Project *Project
	// PublicHosts defaults to setting.Submodule.PublicHosts
	PublicHosts []string
}

// DefaultSubmoduleLinkOptions returns options built from the loaded settings
func DefaultSubmoduleLinkOptions(project *Project) *SubmoduleLinkOptions {
	return &SubmoduleLinkOptions{
		Site:        SiteConfigFromSetting(),
		Paths:       SubURLPathBuilder(setting.AppSubURL),
		Project:     project,
		PublicHosts: setting.Submodule.PublicHosts,
	}
}

var relativeURLPattern = regexp.MustCompile(`^(?:\./)?\.\./.*\.git$`)

// SubmoduleLinks guesses the web links of a submodule url at commitID.
// The first matching rule wins: this site, public hosts, relative urls, then the literal url.
func SubmoduleLinks(refURL, commitID string, opts *SubmoduleLinkOptions) *SubmoduleWebLink {
	if opts == nil {
		opts = DefaultSubmoduleLinkOptions(nil)
	}
	paths := opts.Paths
	if paths == nil {
		paths = SubURLPathBuilder("")
	}

	if owner, repo, ok := matchSelfURL(refURL, opts.Site); ok {
		return &SubmoduleWebLink{
			RepoWebLink: paths.RepoPath(owner, repo),
			TreeWebLink: paths.TreePath(owner, repo, commitID),
		}
	}

	hosts := opts.PublicHosts
	if hosts == nil {
		hosts = setting.Submodule.PublicHosts
	}
	for _, host := range hosts {
		if owner, repo, ok := matchPublicHost(refURL, host); ok {
			repoLink := "https://" + host + "/" + owner + "/" + repo
			return &SubmoduleWebLink{
				RepoWebLink: repoLink,
				TreeWebLink: repoLink + "/tree/" + commitID,
			}
		}
	}

	if owner, repo, ok := matchRelativeURL(refURL, opts.Project); ok {
		return &SubmoduleWebLink{
			RepoWebLink: paths.RepoPath(owner, repo),
			TreeWebLink: paths.TreePath(owner, repo, commitID),
		}
	}

	return &SubmoduleWebLink{RepoWebLink: refURL}
}

// SubmoduleLinksFor resolves the links of the submodule checked out at path, nil if there is none
func SubmoduleLinksFor(modules *SubModules, path, commitID string, opts *SubmoduleLinkOptions) *SubmoduleWebLink {
	sm, ok := modules.Get(path)
	if !ok {
		return nil
	}
	return SubmoduleLinks(sm.URL, commitID, opts)
}

// splitOwnerRepo splits "owner/repo[.git]" which must have exactly two non-empty segments
func splitOwnerRepo(s string) (owner, repo string, ok bool) {
	s = strings.TrimSuffix(s, ".git")
	owner, repo, ok = util.SplitStringAtByteN(s, '/')
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", false
	}
	return owner, repo, true
}

func matchSelfURL(refURL string, site SiteConfig) (owner, repo string, ok bool) {
	for _, prefix := range site.cloneURLPrefixes() {
		if rest, found := strings.CutPrefix(refURL, prefix); found {
			if owner, repo, ok = splitOwnerRepo(rest); ok {
				return owner, repo, true
			}
		}
	}
	return "", "", false
}

func publicHostPattern(host string) string {
	quoted := regexp.QuoteMeta(host)
	return `^(?:git@` + quoted + `:|https?://` + quoted + `/)([^/]+)/([^/]+)\.git$`
}

func matchPublicHost(refURL, host string) (owner, repo string, ok bool) {
	m := regexplru.FindStringSubmatch(publicHostPattern(host), refURL)
	if m == nil || m[2] == "" {
		return "", "", false
	}
	return m[1], m[2], true
}

// matchRelativeURL maps "../repo.git" to the project's own namespace and
// "../owner/repo.git" (or deeper) to the last two path segments.
func matchRelativeURL(refURL string, project *Project) (owner, repo string, ok bool) {
	if !relativeURLPattern.MatchString(refURL) {
		return "", "", false
	}
	components := strings.Split(strings.TrimSuffix(refURL, ".git"), "/")
	repo = components[len(components)-1]
	owner = components[len(components)-2]
	if owner == ".." || owner == "." {
		if project == nil {
			return "", "", false
		}
		owner = project.OwnerName
	}
	if owner == "" || repo == "" || repo == ".." || repo == "." {
		return "", "", false
	}
	return owner, repo, true
}
