// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package common

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"code.gitea.io/cilinks/modules/log"

	"github.com/go-chi/chi/v5/middleware"
)

// Middlewares returns common middlewares
func Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
				// First of all escape the URL RawPath to ensure that all routing is done using a correctly escaped URL
				req.URL.RawPath = req.URL.EscapedPath()
				next.ServeHTTP(resp, req)
			})
		},
		middleware.StripSlashes,
		RouterLogger,
		Recovery,
	}
}

// RouterLogger logs every finished request at Info, or Warn when it failed on the server side
func RouterLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(resp, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logf := log.Info
		if status >= http.StatusInternalServerError {
			logf = log.Warn
		}
		logf("router: completed %s %s for %s, %d %s in %v", req.Method, req.RequestURI, req.RemoteAddr, status, http.StatusText(status), time.Since(start))
	})
}

// Recovery turns a panic of the handler into a 500 response
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				combinedErr := fmt.Sprintf("PANIC: %v\n%s", err, debug.Stack())
				log.Error("%v", combinedErr)
				http.Error(resp, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(resp, req)
	})
}
