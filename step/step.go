package step

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-steplib/xcresult2junit/junit"
	"github.com/bitrise-steplib/xcresult2junit/output"
	"github.com/bitrise-steplib/xcresult2junit/xcresult"
	"github.com/bitrise-steplib/xcresult2junit/xcresulttool"
	shellquote "github.com/kballard/go-shellquote"
)

// Input ...
type Input struct {
	Verbose      bool   `env:"XCRESULT2JUNIT_VERBOSE"`
	LegacyFormat string `env:"XCRESULT2JUNIT_LEGACY_FORMAT"`
	XCResultTool string `env:"XCRESULT2JUNIT_XCRESULTTOOL"`
	OutputPath   string `env:"XCRESULT2JUNIT_OUTPUT_PATH"`
	TestName     string `env:"XCRESULT2JUNIT_TEST_NAME"`
}

// Config ...
type Config struct {
	BundlePath   string
	LegacyMode   xcresulttool.LegacyMode
	XCResultTool []string
	OutputPath   string
	TestName     string
	Verbose      bool
}

// PathModifier ...
type PathModifier interface {
	AbsPath(pth string) (string, error)
}

// ConfigParser ...
type ConfigParser struct {
	inputParser  stepconf.InputParser
	pathModifier PathModifier
}

// NewConfigParser ...
func NewConfigParser(inputParser stepconf.InputParser, pathModifier PathModifier) ConfigParser {
	return ConfigParser{
		inputParser:  inputParser,
		pathModifier: pathModifier,
	}
}

// ProcessConfig reads the environment and validates the bundle given on the command line.
func (p ConfigParser) ProcessConfig(bundlePath string) (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	log.SetEnableDebugLog(input.Verbose)

	legacyMode, err := xcresulttool.ParseLegacyMode(input.LegacyFormat)
	if err != nil {
		return Config{}, err
	}

	tool := xcresulttool.DefaultCommand
	if strings.TrimSpace(input.XCResultTool) != "" {
		tool, err = shellquote.Split(input.XCResultTool)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse xcresulttool command (%s): %w", input.XCResultTool, err)
		}
		if len(tool) == 0 {
			return Config{}, fmt.Errorf("invalid xcresulttool command: %s", input.XCResultTool)
		}
	}

	absBundlePath, err := p.pathModifier.AbsPath(bundlePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute xcresult path: %w", err)
	}
	if err := xcresult.CheckBundle(absBundlePath); err != nil {
		return Config{}, err
	}

	outputPath := input.OutputPath
	if outputPath != "" {
		if outputPath, err = p.pathModifier.AbsPath(outputPath); err != nil {
			return Config{}, fmt.Errorf("failed to get absolute output path: %w", err)
		}
	}

	testName := input.TestName
	if testName == "" {
		testName = strings.TrimSuffix(filepath.Base(absBundlePath), filepath.Ext(absBundlePath))
	}

	config := Config{
		BundlePath:   absBundlePath,
		LegacyMode:   legacyMode,
		XCResultTool: tool,
		OutputPath:   outputPath,
		TestName:     testName,
		Verbose:      input.Verbose,
	}

	log.Debugf("Configuration:")
	log.Debugf("- bundle: %s", config.BundlePath)
	log.Debugf("- xcresulttool: %s", shellquote.Join(config.XCResultTool...))
	log.Debugf("- legacy format: %s", config.LegacyMode)
	log.Debugf("- output: %s", config.OutputPath)
	log.Debugf("- test name: %s", config.TestName)

	return config, nil
}

// ReportExtractor ...
type ReportExtractor interface {
	Extract(bundlePath string) (junit.TestReport, error)
}

// Result ...
type Result struct {
	JUnitXML   []byte
	OutputPath string
	TestName   string

	Suites       int
	Tests        int
	Failures     int
	Errors       int
	LaunchErrors int
}

// Converter turns one xcresult bundle into a junit report.
type Converter struct {
	extractor      ReportExtractor
	outputExporter output.Exporter
}

// NewConverter ...
func NewConverter(extractor ReportExtractor, outputExporter output.Exporter) Converter {
	return Converter{
		extractor:      extractor,
		outputExporter: outputExporter,
	}
}

// Run builds the complete junit document in memory. Nothing is written until Export.
func (c Converter) Run(cfg Config) (Result, error) {
	log.Infof("Converting test results: %s", cfg.BundlePath)
	start := time.Now()

	report, err := c.extractor.Extract(cfg.BundlePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract test results: %w", err)
	}

	junitXML, err := junit.Marshal(report)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create junit report: %w", err)
	}

	result := Result{
		JUnitXML:   junitXML,
		OutputPath: cfg.OutputPath,
		TestName:   cfg.TestName,
		Suites:     len(report.TestSuites),
	}
	for _, suite := range report.TestSuites {
		switch s := suite.(type) {
		case junit.CaseSuite:
			result.Tests += s.Tests()
			result.Failures += s.Failures()
			result.Errors += s.Errors()
		case junit.LaunchErrorSuite:
			result.LaunchErrors++
		}
	}

	log.Printf("- test suites: %d", result.Suites)
	log.Printf("- tests: %d, failures: %d, errors: %d", result.Tests, result.Failures, result.Errors)
	if result.LaunchErrors > 0 {
		log.Warnf("- targets without tests: %d", result.LaunchErrors)
	}
	log.Debugf("Conversion took %v", time.Since(start))

	return result, nil
}

// Export writes the junit report and copies it to the test add-on directory.
func (c Converter) Export(result Result) error {
	if err := c.outputExporter.ExportJUnitReport(result.JUnitXML, result.OutputPath); err != nil {
		return err
	}

	c.outputExporter.ExportTestAddonReport(result.JUnitXML, result.TestName)

	return nil
}
