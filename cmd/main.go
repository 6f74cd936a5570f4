// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"code.gitea.io/cilinks/modules/log"
	"code.gitea.io/cilinks/modules/setting"

	"github.com/urfave/cli/v2"
)

func appGlobalFlags() []cli.Flag {
	return []cli.Flag{
		// shared configuration flags, they are for global and for each sub-command at the same time
		// eg: such command is valid: "./cilinks --config /tmp/app.ini web --config /tmp/app.ini", while it's discouraged indeed
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   setting.CustomConf,
			Usage:   "Set custom config file (defaults to 'custom/conf/app.ini')",
		},
	}
}

func hasFlag(flags []cli.Flag, name string) bool {
	for _, f := range flags {
		for _, n := range f.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}

// prepareSubcommandWithConfig adds the global flags and the config loading to command, once
func prepareSubcommandWithConfig(command *cli.Command, globalFlags []cli.Flag) {
	if hasFlag(command.Flags, "config") {
		return
	}
	command.Flags = append(append([]cli.Flag{}, globalFlags...), command.Flags...)
	command.Before = prepareCustomConf(command.Before)
}

// prepareCustomConf loads the config file named by the nearest --config flag before the action runs
func prepareCustomConf(before cli.BeforeFunc) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		customConf := ""
		// from children to parent, check the global flags
		for _, curCtx := range ctx.Lineage() {
			if curCtx.IsSet("config") {
				customConf = curCtx.String("config")
				break
			}
		}
		if customConf != "" {
			setting.CustomConf = customConf
		}
		if err := setting.InitFromFile(setting.CustomConf); err != nil {
			return fmt.Errorf("unable to load config %q: %w", setting.CustomConf, err)
		}
		if before != nil {
			return before(ctx)
		}
		return nil
	}
}

// PrepareConsoleLoggerLevel sets the level of the console logger used before the config is loaded
func PrepareConsoleLoggerLevel(defaultLevel log.Level) func(*cli.Context) error {
	return func(c *cli.Context) error {
		level := defaultLevel
		if c.Bool("quiet") {
			level = log.FATAL
		}
		if c.Bool("debug") || c.Bool("verbose") {
			level = log.TRACE
		}
		log.GetLogger().SetLevel(level)
		return nil
	}
}

type AppVersion struct {
	Version string
	Extra   string
}

func NewMainApp(appVer AppVersion) *cli.App {
	app := cli.NewApp()
	app.Name = "cilinks"
	app.Usage = "Submodule links and CI build status for a self-hosted git service"
	app.Description = `cilinks program contains "web" and other subcommands. If no subcommand is given, it starts the web server by default.`
	app.Version = appVer.Version + appVer.Extra
	app.EnableBashCompletion = true

	// these sub-commands need to use config file
	// the commands are created per app, preparing them adds flags
	cmdWeb := newCmdWeb()
	subCmdWithConfig := []*cli.Command{
		cmdWeb,
		newCmdSubmodule(),
		newCmdCI(),
	}

	app.DefaultCommand = cmdWeb.Name

	app.Flags = append(app.Flags, appGlobalFlags()...)
	app.Flags = append(app.Flags,
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only display Fatal logging errors until logging is set-up"},
		&cli.BoolFlag{Name: "verbose", Usage: "Set initial logging to TRACE level until logging is properly set-up"},
	)
	app.Before = PrepareConsoleLoggerLevel(log.INFO)
	for i := range subCmdWithConfig {
		prepareSubcommandWithConfig(subCmdWithConfig[i], appGlobalFlags())
	}
	app.Commands = append(app.Commands, subCmdWithConfig...)
	return app
}

func RunMainApp(app *cli.App, args ...string) error {
	ctx, cancel := installSignals()
	defer cancel()
	err := app.RunContext(ctx, args)
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "flag provided but not defined:") {
		// the cli package should already have output the error message, so just exit
		cli.OsExiter(1)
		return err
	}
	_, _ = fmt.Fprintf(app.ErrWriter, "Command error: %v\n", err)
	cli.OsExiter(1)
	return err
}
