// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the cilinks binary - such as "web" or "ci".
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"code.gitea.io/cilinks/modules/util"
	"code.gitea.io/cilinks/routers"
	"code.gitea.io/cilinks/services/ci"

	"github.com/urfave/cli/v2"
)

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}

// ciProvider returns the enabled CI service named by the --vendor flag
func ciProvider(c *cli.Context) (ci.BuildInfoProvider, error) {
	registry, err := routers.InitCIServices()
	if err != nil {
		return nil, err
	}
	p, err := registry.Get(c.String("vendor"))
	if errors.Is(err, util.ErrNotExist) {
		return nil, fmt.Errorf("%w, is it active in the [ci.%s] section?", err, c.String("vendor"))
	}
	return p, err
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}
