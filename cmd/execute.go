package cmd

import (
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"
	"github.com/kr/pretty"

	"github.com/mxmlextrema/mxmlcaot/common"
	"github.com/mxmlextrema/mxmlcaot/config"
	"github.com/mxmlextrema/mxmlcaot/report"
)

// Execute is the main entry point for the `mxmlcaot` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("mxmlcaot", "mxmlcaot drives the ActionScript 3 semantic model", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("warn")

	configCmd := cli.AddSubcommand("config", "print the database options of a project", true)
	configCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	envCmd := cli.AddSubcommand("env", "print the meta-environment of a project", true)
	envCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	preludeCmd := cli.AddSubcommand("prelude", "declare the built-in definitions and check them", true)
	preludeCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	lookupCmd := cli.AddSubcommand("lookup", "resolve dotted names against the prelude interactively", true)
	lookupCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	cli.AddSubcommand("version", "print the version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.InitReporter(report.LogLevelError)
		report.ReportFatal("%s", err)
	}

	report.InitReporter(report.LogLevelFromName(result.Arguments["loglevel"].(string)))
	defer report.CatchErrors("mxmlcaot")

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "config":
		execConfigCommand(subResult)
	case "env":
		execEnvCommand(subResult)
	case "prelude":
		execPreludeCommand(subResult)
	case "lookup":
		execLookupCommand(subResult)
	case "version":
		report.DisplayInfoMessage("mxmlcaot Version", common.Version)
	}

	if report.AnyErrors() {
		os.Exit(1)
	}
}

// projectPath extracts the absolute project path from the primary argument.
func projectPath(result *olive.ArgParseResult) string {
	relPath, _ := result.PrimaryArg()

	absPath, err := filepath.Abs(relPath)
	if err != nil {
		report.ReportFatal("invalid project path `%s`: %s", relPath, err)
	}

	return absPath
}

// execConfigCommand executes the `config` subcommand
func execConfigCommand(result *olive.ArgParseResult) {
	options, err := config.LoadOptions(projectPath(result))
	if err != nil {
		report.ReportViolations("config", err)
		return
	}

	pretty.Println(options)
}

// execEnvCommand executes the `env` subcommand
func execEnvCommand(result *olive.ArgParseResult) {
	env, err := config.LoadEnv(projectPath(result))
	if err != nil {
		report.ReportStdError("env", err)
		return
	}

	pretty.Println(env)
}
