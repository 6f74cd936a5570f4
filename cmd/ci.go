// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"code.gitea.io/cilinks/modules/json"
	"code.gitea.io/cilinks/services/ci"

	"github.com/urfave/cli/v2"
)

func vendorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "vendor",
		Value: "drone",
		Usage: "CI service to query",
	}
}

// newCmdCI creates the sub-command querying the configured CI services
func newCmdCI() *cli.Command {
	return &cli.Command{
		Name:  "ci",
		Usage: "Query the configured CI services",
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the build status of a commit",
				Flags: []cli.Flag{
					vendorFlag(),
					&cli.StringFlag{
						Name:     "sha",
						Usage:    "Commit SHA",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "ref",
						Usage:    "Branch the commit was pushed to",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the status as json",
					},
				},
				Action: runCIStatus,
			},
			{
				Name:  "badge",
				Usage: "Show the status badge url of a branch",
				Flags: []cli.Flag{
					vendorFlag(),
					&cli.StringFlag{
						Name:  "branch",
						Usage: "Branch, defaults to the configured default branch",
					},
				},
				Action: runCIBadge,
			},
			{
				Name:   "builds",
				Usage:  "Show the build summary url of the repository",
				Flags:  []cli.Flag{vendorFlag()},
				Action: runCIBuilds,
			},
		},
	}
}

func runCIStatus(c *cli.Context) error {
	p, err := ciProvider(c)
	if err != nil {
		return err
	}
	lookup := ci.Lookup(c.Context, p, c.String("sha"), c.String("ref"))
	if lookup.Info.Err != nil {
		_, _ = fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", p.Name(), lookup.Info.Err)
	}

	out := writer(c)
	if c.Bool("json") {
		return json.NewEncoder(out).Encode(lookup)
	}
	_, err = fmt.Fprintf(out, "%s\t%s\n", lookup.Status, lookup.BuildPage)
	return err
}

func runCIBadge(c *cli.Context) error {
	p, err := ciProvider(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer(c), p.StatusImagePath(c.String("branch")))
	return err
}

func runCIBuilds(c *cli.Context) error {
	p, err := ciProvider(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer(c), p.BuildsPath())
	return err
}
