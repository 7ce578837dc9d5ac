package cmd

import (
	"os"
	"path/filepath"

	"scratchc/common"
	"scratchc/gate"
	"scratchc/logging"
	"scratchc/mods"
	"scratchc/pack"
	"scratchc/server"
	"scratchc/syntax"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `scratchc` application and returns the process exit
// code: 0 on success, 1 on any parse, feature-gate or I/O failure
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("scratchc", "scratchc translates restricted JavaScript into Scratch 3 projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the translator log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	translateCmd := cli.AddSubcommand("translate", "translate a source into a project archive", true)
	translateCmd.AddPrimaryArg("input-path", "the path to the source file, directory or bundle", true)
	translateCmd.AddStringArg("output", "o", "the path of the output archive", false)

	serveCmd := cli.AddSubcommand("serve", "run the translation upload endpoint", true)
	serveCmd.AddStringArg("addr", "a", "the address to listen on", false)

	cli.AddSubcommand("version", "print the scratchc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	// process the inputed command line
	loglevel := result.Arguments["loglevel"].(string)
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "translate":
		return execTranslateCommand(subResult, loglevel)
	case "serve":
		return execServeCommand(subResult, loglevel)
	case "version":
		logging.PrintInfoMessage("scratchc Version", common.ScratchcVersion)
	}

	return 0
}

// execTranslateCommand executes the translate subcommand and handles all
// errors
func execTranslateCommand(result *olive.ArgParseResult, loglevel string) int {
	inputRelPath, _ := result.PrimaryArg()

	input, err := filepath.Abs(inputRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	cfg, err := mods.LoadConfig(workDir)
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return 1
	}

	// initialize the logger before any phase can report
	logging.Initialize(loglevel)

	output := cfg.OutputPath
	if outArgVal, ok := result.Arguments["output"]; ok {
		output = outArgVal.(string)
	}

	logging.LogHeader(common.ScratchcVersion, pack.OutputPath(input, output))

	if err := pack.Translate(input, output); err != nil {
		// parse and feature errors were already displayed with their
		// positions by the pipeline; everything else surfaces here
		switch err.(type) {
		case *syntax.ParseError, *gate.UnsupportedFeature:
		default:
			logging.PrintErrorMessage("IO Error", err)
		}

		logging.LogFinished()
		return 1
	}

	logging.LogFinished()
	return 0
}

// execServeCommand executes the serve subcommand.  It blocks for the
// lifetime of the listener.
func execServeCommand(result *olive.ArgParseResult, loglevel string) int {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return 1
	}

	cfg, err := mods.LoadConfig(workDir)
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return 1
	}

	logging.Initialize(loglevel)

	addr := cfg.ServerAddr
	if addrArgVal, ok := result.Arguments["addr"]; ok {
		addr = addrArgVal.(string)
	}

	if err := server.New(addr).Run(); err != nil {
		logging.PrintErrorMessage("Server Error", err)
		return 1
	}

	return 0
}
