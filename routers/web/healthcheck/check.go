// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package healthcheck

import (
	"net/http"
	"time"

	"code.gitea.io/cilinks/modules/json"
	"code.gitea.io/cilinks/services/ci"
)

type status string

const (
	// pass healthy (acceptable aliases: "ok" to support Node's Terminus and "up" for Java's SpringBoot)
	// fail unhealthy (acceptable aliases: "error" to support Node's Terminus and "down" for Java's SpringBoot), and
	// warn healthy, with some concerns.
	//
	// ref https://datatracker.ietf.org/doc/html/draft-inadarei-api-health-check#section-3.1
	pass status = "pass"
	fail status = "fail"
	warn status = "warn"
)

func (s status) ToHTTPStatus() int {
	if s == pass || s == warn {
		return http.StatusOK
	}
	return http.StatusFailedDependency
}

type checks map[string][]componentStatus

// response is the data returned by the health endpoint, which will be marshaled to JSON format
type response struct {
	Status      status `json:"status"`
	Description string `json:"description"`      // a human-friendly description of the service
	Checks      checks `json:"checks,omitempty"` // The Checks Object
}

// componentStatus presents one status of a single check object
type componentStatus struct {
	Status status `json:"status"`
	Time   string `json:"time"`             // the date-time, in ISO8601 format
	Output string `json:"output,omitempty"` // this field SHOULD be omitted for "pass" state.
}

// Check returns the health check API handler. It does not contact the CI servers,
// it only reports which ones are configured.
func Check(registry *ci.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rsp := response{
			Description: "cilinks",
			Checks:      make(checks),
		}
		rsp.Status = checkCIServices(registry, rsp.Checks)

		data, _ := json.Marshal(rsp)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rsp.Status.ToHTTPStatus())
		_, _ = w.Write(data)
	}
}

func checkCIServices(registry *ci.Registry, checks checks) status {
	var providers []ci.BuildInfoProvider
	if registry != nil {
		providers = registry.List()
	}
	if len(providers) == 0 {
		checks["ci:services"] = []componentStatus{{
			Status: warn,
			Time:   getCheckTime(),
			Output: "no ci service is configured",
		}}
		return warn
	}
	for _, p := range providers {
		checks["ci:"+p.Name()] = []componentStatus{{Status: pass, Time: getCheckTime()}}
	}
	return pass
}

func getCheckTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}
