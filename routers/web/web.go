// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"

	"code.gitea.io/cilinks/modules/json"
	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/metrics"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/modules/util"
	"code.gitea.io/cilinks/routers/common"
	"code.gitea.io/cilinks/routers/web/healthcheck"
	"code.gitea.io/cilinks/services/ci"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Routes returns the http handler serving the hook, CI status and submodule link endpoints
func Routes(registry *ci.Registry) *chi.Mux {
	if registry == nil {
		registry = ci.NewRegistry()
	}
	h := &handlers{registry: registry}

	r := chi.NewRouter()
	r.Use(common.Middlewares()...)

	r.Get("/api/healthz", healthcheck.Check(registry))
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Post("/hooks", h.dispatchHook)
	r.Post("/hooks/{vendor}", h.serviceHook)

	r.Route("/api/v1", func(r chi.Router) {
		if setting.CORSConfig.Enabled {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   setting.CORSConfig.AllowDomain,
				AllowedMethods:   setting.CORSConfig.Methods,
				AllowedHeaders:   setting.CORSConfig.Headers,
				AllowCredentials: setting.CORSConfig.AllowCredentials,
				MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
			}))
		}
		r.Route("/ci", func(r chi.Router) {
			r.Get("/", h.listServices)
			r.Get("/status", h.combinedStatus)
			r.Route("/{vendor}", func(r chi.Router) {
				r.Get("/", h.serviceInfo)
				r.Get("/status", h.commitStatus)
				r.Get("/badge", h.badge)
				r.Get("/builds", h.builds)
			})
		})
		r.Route("/submodule", func(r chi.Router) {
			r.Get("/links", submoduleLinks)
			r.Post("/links", gitmodulesLinks)
		})
	})
	return r
}

type handlers struct {
	registry *ci.Registry
}

// APIError is the body of every failed API request
type APIError struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Unable to write json response: %v", err)
	}
}

// writeError maps the util error kinds to http status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, util.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, util.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, util.ErrUnavailable):
		status = http.StatusBadGateway
	default:
		log.Error("Internal error: %v", err)
	}
	writeJSON(w, status, APIError{Message: err.Error()})
}

func (h *handlers) provider(w http.ResponseWriter, req *http.Request) (ci.BuildInfoProvider, bool) {
	p, err := h.registry.Get(chi.URLParam(req, "vendor"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return p, true
}
