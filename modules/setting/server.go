// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Scheme describes protocol types
type Scheme string

// enumerates all the scheme types
const (
	HTTP  Scheme = "http"
	HTTPS Scheme = "https"
)

var (
	// AppURL is the Application ROOT_URL. It always has a '/' suffix
	// It maps to ini:"ROOT_URL"
	AppURL string
	// AppSubURL represents the sub-url mounting point. It is either "" or starts with '/' and ends without '/', such as '/{subpath}'.
	AppSubURL string

	Protocol Scheme
	Domain   string
	HTTPAddr string
	HTTPPort string

	// SSH settings used to recognize clone URLs pointing at this site
	SSH = struct {
		User   string
		Domain string
		Port   int
	}{
		User: "git",
		Port: 22,
	}
)

func loadServerFrom(rootCfg ConfigProvider) error {
	sec := rootCfg.Section("server")

	Domain = sec.Key("DOMAIN").MustString("localhost")
	HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	HTTPPort = sec.Key("HTTP_PORT").MustString("3000")

	Protocol = HTTP
	if sec.Key("PROTOCOL").String() == "https" {
		Protocol = HTTPS
	}

	defaultAppURL := string(Protocol) + "://" + Domain + ":" + HTTPPort
	AppURL = sec.Key("ROOT_URL").MustString(defaultAppURL)

	appURL, err := url.Parse(AppURL)
	if err != nil {
		return fmt.Errorf("invalid ROOT_URL %q: %w", AppURL, err)
	}
	// Remove default ports from AppURL.
	// (scheme-based URL normalization, RFC 3986 section 6.2.3)
	if (appURL.Scheme == string(HTTP) && appURL.Port() == "80") || (appURL.Scheme == string(HTTPS) && appURL.Port() == "443") {
		appURL.Host = appURL.Hostname()
	}
	// This should be TrimRight to ensure that there is only a single '/' at the end of AppURL.
	AppURL = strings.TrimRight(appURL.String(), "/") + "/"

	// Suburl should start with '/' and end without '/', such as '/{subpath}'.
	AppSubURL = strings.TrimSuffix(appURL.Path, "/")

	// Check if Domain differs from AppURL domain than update it to AppURL's domain
	urlHostname := appURL.Hostname()
	if urlHostname != Domain && net.ParseIP(urlHostname) == nil && urlHostname != "" {
		Domain = urlHostname
	}

	SSH.User = sec.Key("SSH_USER").MustString("git")
	SSH.Domain = sec.Key("SSH_DOMAIN").MustString(Domain)
	SSH.Port = sec.Key("SSH_PORT").MustInt(22)
	return nil
}
