package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ComedicChimera/olive"

	"minic/common"
	"minic/config"
	"minic/report"
)

// Execute runs the main `minic` application and returns its exit code.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("minic", "minic is a front end for the minic language", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, report.LogLevelNames)
	cli.AddStringArg("config", "c", "the path to the configuration file", false)

	scanCmd := cli.AddSubcommand("scan", "tokenize a source file", true)
	scanCmd.AddPrimaryArg("file", "the source file to scan", true)

	parseCmd := cli.AddSubcommand("parse", "parse a source file", true)
	parseCmd.AddPrimaryArg("file", "the source file to parse", true)
	parseCmd.AddFlag("tree", "t", "display the syntax tree")
	parseCmd.AddFlag("dump", "d", "dump the raw syntax tree")

	checkCmd := cli.AddSubcommand("check", "check a source file or directory", true)
	checkCmd.AddPrimaryArg("path", "the source file or directory to check", true)
	checkCmd.AddFlag("symbols", "s", "display the declaration table")

	initCmd := cli.AddSubcommand("init", "write a default configuration file", true)
	initCmd.AddPrimaryArg("dir", "the directory to write the configuration file to", false)

	serveCmd := cli.AddSubcommand("serve", "run the analysis service", true)
	serveCmd.AddStringArg("addr", "a", "the address to listen on", false)

	cli.AddSubcommand("version", "print the minic version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "version":
		report.PrintInfoMessage("Minic Version", common.MinicVersion)
		return 0
	case "init":
		return execInitCommand(subResult)
	}

	d, err := newDriver(stringArg(result, "config"), stringArg(result, "loglevel"), os.Stdout)
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		return 1
	}

	switch subcmdName {
	case "scan":
		path, _ := subResult.PrimaryArg()
		d.scan(path)
	case "parse":
		path, _ := subResult.PrimaryArg()
		d.parse(path, subResult.HasFlag("tree"), subResult.HasFlag("dump"))
	case "check":
		path, _ := subResult.PrimaryArg()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d.check(ctx, path, subResult.HasFlag("symbols"))
	case "serve":
		return execServeCommand(d, stringArg(subResult, "addr"))
	}

	d.rep.ReportFinished()
	return d.exitCode()
}

// execInitCommand executes the `init` subcommand.
func execInitCommand(result *olive.ArgParseResult) int {
	dir, ok := result.PrimaryArg()
	if !ok {
		dir = "."
	}

	path, err := config.Init(dir)
	if err != nil {
		report.PrintErrorMessage("Config Init Error", err)
		return 1
	}

	report.PrintInfoMessage("Config", "wrote "+path)
	return 0
}

// execServeCommand executes the `serve` subcommand.  It runs until the
// process is interrupted.
func execServeCommand(d *driver, addr string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.serve(ctx, addr); err != nil {
		report.PrintErrorMessage("Server Error", err)
		return 1
	}

	return 0
}

// -----------------------------------------------------------------------------

// stringArg returns the value of an optional string argument or the empty
// string if it was not given.
func stringArg(result *olive.ArgParseResult, name string) string {
	if v, ok := result.Arguments[name]; ok {
		return v.(string)
	}

	return ""
}
