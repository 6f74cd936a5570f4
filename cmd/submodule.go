// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"

	"code.gitea.io/cilinks/modules/git"

	"github.com/urfave/cli/v2"
)

// newCmdSubmodule creates the sub-command resolving the web links of submodule urls
func newCmdSubmodule() *cli.Command {
	return &cli.Command{
		Name:      "submodule",
		Usage:     "Resolve the web links of a submodule url or of every entry of a .gitmodules file",
		ArgsUsage: "[url]",
		Action:    runSubmodule,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "gitmodules",
				Usage: "Path of a .gitmodules file to resolve instead of a single url",
			},
			&cli.StringFlag{
				Name:  "commit",
				Usage: "Commit the submodule points to",
			},
			&cli.StringFlag{
				Name:  "owner",
				Usage: "Owner (namespace) of the repository containing the submodule, used for relative urls",
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: "Name of the repository containing the submodule",
			},
		},
	}
}

func runSubmodule(c *cli.Context) error {
	var project *git.Project
	if c.String("owner") != "" {
		project = &git.Project{OwnerName: c.String("owner"), Name: c.String("repo")}
	}
	opts := git.DefaultSubmoduleLinkOptions(project)
	commitID := c.String("commit")
	out := writer(c)

	if path := c.String("gitmodules"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", path, err)
		}
		defer f.Close()

		modules, err := git.ParseSubModules(f)
		if err != nil {
			return err
		}
		for _, sm := range modules.List() {
			printSubmoduleLink(out, sm.Path, git.SubmoduleLinks(sm.URL, commitID, opts))
		}
		return nil
	}

	if !c.Args().Present() {
		return fmt.Errorf("a submodule url or --gitmodules is required")
	}
	refURL := c.Args().First()
	printSubmoduleLink(out, refURL, git.SubmoduleLinks(refURL, commitID, opts))
	return nil
}

func printSubmoduleLink(out io.Writer, name string, link *git.SubmoduleWebLink) {
	tree := link.TreeWebLink
	if tree == "" {
		tree = "-"
	}
	_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", name, link.RepoWebLink, tree)
}
