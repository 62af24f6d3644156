package output

import (
	"fmt"
	"io"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-steplib/xcresult2junit/testaddon"
)

// Exporter ...
type Exporter interface {
	ExportJUnitReport(junitXML []byte, outputPath string) error
	ExportTestAddonReport(junitXML []byte, testName string)
}

type exporter struct {
	envRepository     env.Repository
	fileManager       fileutil.FileManager
	stdout            io.Writer
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, fileManager fileutil.FileManager, stdout io.Writer, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		envRepository:     envRepository,
		fileManager:       fileManager,
		stdout:            stdout,
		testAddonExporter: testAddonExporter,
	}
}

// ExportJUnitReport writes the report to outputPath, or to stdout if outputPath is empty.
func (e exporter) ExportJUnitReport(junitXML []byte, outputPath string) error {
	if outputPath == "" {
		if _, err := e.stdout.Write(junitXML); err != nil {
			return fmt.Errorf("failed to write junit report to stdout: %w", err)
		}
		return nil
	}

	if err := e.fileManager.Write(outputPath, string(junitXML), 0644); err != nil {
		return fmt.Errorf("failed to write junit report (%s): %w", outputPath, err)
	}

	log.Donef("JUnit report written to: %s", outputPath)

	return nil
}

// ExportTestAddonReport copies the report into the per-step test result directory when running on Bitrise.
// Failures are only reported as warnings.
func (e exporter) ExportTestAddonReport(junitXML []byte, testName string) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 {
		log.Debugf("%s is not set, skipping test results export", configs.BitrisePerStepTestResultDirEnvKey)
		return
	}

	log.Printf("")
	log.Infof("Exporting test results")

	dir, err := e.testAddonExporter.ExportReport(testaddon.AddonReport{
		JUnitXML:              junitXML,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: testName,
	})
	if err != nil {
		log.Warnf("Failed to export test results: %s", err)
		return
	}

	log.Donef("Test results exported to: %s", dir)
}
