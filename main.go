package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/xcresult2junit/output"
	"github.com/bitrise-steplib/xcresult2junit/step"
	"github.com/bitrise-steplib/xcresult2junit/testaddon"
	"github.com/bitrise-steplib/xcresult2junit/xcresult"
	"github.com/bitrise-steplib/xcresult2junit/xcresulttool"
)

func main() {
	// stdout is reserved for the junit document
	log.SetOutWriter(os.Stderr)

	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run returns the process exit code. stdout only receives a complete junit document.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(stderr, "usage: %s Foobar.xcresult\n", filepath.Base(args[0]))
		return 1
	}

	if err := convert(args[1], stdout); err != nil {
		log.Errorf("%s", err)
		return 1
	}
	return 0
}

func convert(bundlePath string, stdout io.Writer) error {
	envRepository := env.NewRepository()
	fileManager := fileutil.NewFileManager()

	configParser := step.NewConfigParser(stepconf.NewInputParser(envRepository), pathutil.NewPathModifier())
	config, err := configParser.ProcessConfig(bundlePath)
	if err != nil {
		return fmt.Errorf("issue with input: %w", err)
	}

	resolver, err := xcresulttool.NewResolver(command.NewFactory(envRepository), config.XCResultTool, config.LegacyMode)
	if err != nil {
		return err
	}

	exporter := output.NewExporter(envRepository, fileManager, stdout, testaddon.NewExporter(fileManager))
	converter := step.NewConverter(xcresult.NewExtractor(resolver), exporter)

	result, err := converter.Run(config)
	if err != nil {
		return err
	}

	return converter.Export(result)
}
