// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"io"
	"net/http"

	"code.gitea.io/cilinks/modules/git"
	"code.gitea.io/cilinks/modules/util"
)

const maxGitmodulesSize = 1 << 20

// SubmoduleLink is the API form of git.SubmoduleWebLink, TreeWebLink is null for unrecognized urls
type SubmoduleLink struct {
	Name        string  `json:"name,omitempty"`
	Path        string  `json:"path,omitempty"`
	URL         string  `json:"url"`
	RepoWebLink string  `json:"repo_web_link"`
	TreeWebLink *string `json:"tree_web_link"`
}

func toSubmoduleLink(refURL string, link *git.SubmoduleWebLink) *SubmoduleLink {
	l := &SubmoduleLink{URL: refURL, RepoWebLink: link.RepoWebLink}
	if link.TreeWebLink != "" {
		l.TreeWebLink = &link.TreeWebLink
	}
	return l
}

// linkOptions builds the resolver options from the owner and repo query parameters
func linkOptions(req *http.Request) *git.SubmoduleLinkOptions {
	var project *git.Project
	if owner := req.URL.Query().Get("owner"); owner != "" {
		project = &git.Project{OwnerName: owner, Name: req.URL.Query().Get("repo")}
	}
	return git.DefaultSubmoduleLinkOptions(project)
}

// submoduleLinks resolves a single submodule url
func submoduleLinks(w http.ResponseWriter, req *http.Request) {
	refURL := req.URL.Query().Get("url")
	if refURL == "" {
		writeError(w, util.NewInvalidArgumentErrorf("url is required"))
		return
	}
	ref := &git.SubmoduleReference{URL: refURL, ObjectID: req.URL.Query().Get("commit")}
	writeJSON(w, http.StatusOK, toSubmoduleLink(refURL, ref.WebLinks(linkOptions(req))))
}

// gitmodulesLinks resolves every submodule of the .gitmodules file sent as request body
func gitmodulesLinks(w http.ResponseWriter, req *http.Request) {
	modules, err := git.ParseSubModules(io.LimitReader(req.Body, maxGitmodulesSize))
	if err != nil {
		writeError(w, util.NewInvalidArgumentErrorf("%v", err))
		return
	}

	commitID := req.URL.Query().Get("commit")
	opts := linkOptions(req)
	links := make([]*SubmoduleLink, 0, modules.Len())
	for _, sm := range modules.List() {
		l := toSubmoduleLink(sm.URL, git.SubmoduleLinks(sm.URL, commitID, opts))
		l.Name, l.Path = sm.Name, sm.Path
		links = append(links, l)
	}
	writeJSON(w, http.StatusOK, links)
}
