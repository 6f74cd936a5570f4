// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"fmt"
	"io"
	"net/http"

	"code.gitea.io/cilinks/modules/commitstatus"
	"code.gitea.io/cilinks/modules/json"
	"code.gitea.io/cilinks/modules/util"
	"code.gitea.io/cilinks/services/ci"
)

const maxHookPayloadSize = 1 << 20

// ServiceInfo describes a configured CI service
type ServiceInfo struct {
	Name            string     `json:"name"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Fields          []ci.Field `json:"fields"`
	SupportedEvents []string   `json:"supported_events"`
	BuildsPath      string     `json:"builds_path"`
}

func toServiceInfo(p ci.BuildInfoProvider) *ServiceInfo {
	return &ServiceInfo{
		Name:            p.Name(),
		Title:           p.Title(),
		Description:     p.Description(),
		Fields:          p.Fields(),
		SupportedEvents: p.SupportedEvents(),
		BuildsPath:      p.BuildsPath(),
	}
}

// CombinedStatus is the folded state of a commit across all CI services
type CombinedStatus struct {
	SHA      string                         `json:"sha"`
	Ref      string                         `json:"ref"`
	State    commitstatus.CommitStatusState `json:"state"`
	Statuses []*ci.CommitLookup             `json:"statuses"`
}

func (h *handlers) listServices(w http.ResponseWriter, req *http.Request) {
	providers := h.registry.List()
	infos := make([]*ServiceInfo, 0, len(providers))
	for _, p := range providers {
		infos = append(infos, toServiceInfo(p))
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handlers) serviceInfo(w http.ResponseWriter, req *http.Request) {
	p, ok := h.provider(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toServiceInfo(p))
}

func commitParams(req *http.Request) (sha, ref string, err error) {
	sha = req.URL.Query().Get("sha")
	ref = req.URL.Query().Get("ref")
	if sha == "" || ref == "" {
		return "", "", util.NewInvalidArgumentErrorf("sha and ref are required")
	}
	return sha, ref, nil
}

func (h *handlers) commitStatus(w http.ResponseWriter, req *http.Request) {
	p, ok := h.provider(w, req)
	if !ok {
		return
	}
	sha, ref, err := commitParams(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ci.Lookup(req.Context(), p, sha, ref))
}

func (h *handlers) combinedStatus(w http.ResponseWriter, req *http.Request) {
	sha, ref, err := commitParams(req)
	if err != nil {
		writeError(w, err)
		return
	}
	state, lookups := h.registry.CombinedStatus(req.Context(), sha, ref)
	writeJSON(w, http.StatusOK, &CombinedStatus{SHA: sha, Ref: ref, State: state, Statuses: lookups})
}

func (h *handlers) badge(w http.ResponseWriter, req *http.Request) {
	p, ok := h.provider(w, req)
	if !ok {
		return
	}
	http.Redirect(w, req, p.StatusImagePath(req.URL.Query().Get("branch")), http.StatusFound)
}

func (h *handlers) builds(w http.ResponseWriter, req *http.Request) {
	p, ok := h.provider(w, req)
	if !ok {
		return
	}
	http.Redirect(w, req, p.BuildsPath(), http.StatusFound)
}

func readPushEvent(req *http.Request) (*ci.PushEvent, error) {
	event := &ci.PushEvent{}
	if err := json.NewDecoder(io.LimitReader(req.Body, maxHookPayloadSize)).Decode(event); err != nil {
		return nil, util.NewInvalidArgumentErrorf("invalid hook payload: %v", err)
	}
	if event.ObjectKind == "" {
		event.ObjectKind = req.Header.Get("X-Gitea-Event")
	}
	if event.ObjectKind == "" {
		return nil, util.NewInvalidArgumentErrorf("hook event kind is missing")
	}
	return event, nil
}

// serviceHook hands a hook event to a single CI service
func (h *handlers) serviceHook(w http.ResponseWriter, req *http.Request) {
	p, ok := h.provider(w, req)
	if !ok {
		return
	}
	event, err := readPushEvent(req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := p.Execute(req.Context(), event); err != nil {
		writeError(w, fmt.Errorf("%s hook: %w", p.Name(), err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dispatchHook hands a hook event to every CI service
func (h *handlers) dispatchHook(w http.ResponseWriter, req *http.Request) {
	event, err := readPushEvent(req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.registry.Dispatch(req.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
