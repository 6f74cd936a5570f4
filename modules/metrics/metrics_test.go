// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCICall(t *testing.T) {
	labels := prometheus.Labels{"vendor": "drone", "operation": "build_info", "response_code": "404"}
	before := testutil.ToFloat64(ciCallsTotal.With(labels))

	RecordCICall("drone", CIOperationBuildInfo, 404, 20*time.Millisecond)
	RecordCICall("drone", CIOperationBuildInfo, 404, 30*time.Millisecond)

	assert.InDelta(t, before+2, testutil.ToFloat64(ciCallsTotal.With(labels)), 0.001)
}

func TestRecordHookEvent(t *testing.T) {
	labels := prometheus.Labels{"vendor": "drone", "event": "tag_push", "handled": "false"}
	before := testutil.ToFloat64(hookEventsTotal.With(labels))
	RecordHookEvent("drone", "tag_push", false)
	assert.InDelta(t, before+1, testutil.ToFloat64(hookEventsTotal.With(labels)), 0.001)
}

func TestHandler(t *testing.T) {
	RecordCICall("drone", CIOperationNotify, 200, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cilinks_ci_calls_total{operation="notify",response_code="200",vendor="drone"}`)
}
