// Copyright 2014 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/setting"
	"code.gitea.io/cilinks/routers"
	"code.gitea.io/cilinks/routers/web"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

// newCmdWeb creates the web sub-command.
func newCmdWeb() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web server",
		Description: `The web server serves the push hooks of the CI services, the build status of commits
and the links of submodules.`,
		Action: runWeb,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Temporary port number to prevent conflict",
			},
		},
	}
}

func runWeb(c *cli.Context) error {
	if c.IsSet("port") {
		setting.HTTPPort = c.String("port")
	}

	registry, err := routers.InitCIServices()
	if err != nil {
		log.Error("Unable to init CI services: %v", err)
		return err
	}

	listenAddr := net.JoinHostPort(setting.HTTPAddr, setting.HTTPPort)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           web.Routes(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Listen: %s://%s%s", setting.Protocol, listenAddr, setting.AppSubURL)
	log.Info("AppURL(ROOT_URL): %s", setting.AppURL)

	return serve(c.Context, srv)
}

// serve runs srv until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("PID: %d Gracefully shutting down", os.Getpid())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed: %v", err)
		return err
	}
	log.Info("Web server stopped")
	return nil
}
