// Package testaddon lays out junit reports the way the Bitrise test reports add-on expects them:
// one directory per test run, holding the report and a test-info.json.
package testaddon

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
)

// ReportFileName ...
const ReportFileName = "junit.xml"

const metadataFileName = "test-info.json"

// Exporter ...
type Exporter interface {
	ExportReport(report AddonReport) (string, error)
}

type exporter struct {
	fileManager fileutil.FileManager
}

// NewExporter ...
func NewExporter(fileManager fileutil.FileManager) Exporter {
	return &exporter{
		fileManager: fileManager,
	}
}

// AddonReport ...
type AddonReport struct {
	JUnitXML              []byte
	TargetAddonPath       string
	TargetAddonBundleName string
}

// ExportReport writes the report and its metadata to <TargetAddonPath>/<TargetAddonBundleName>/
// and returns that directory.
func (e exporter) ExportReport(report AddonReport) (string, error) {
	bundleName := ReplaceUnsupportedFilenameCharacters(report.TargetAddonBundleName)
	addonPerStepOutputDir := filepath.Join(report.TargetAddonPath, bundleName)

	reportPth := filepath.Join(addonPerStepOutputDir, ReportFileName)
	if err := e.fileManager.Write(reportPth, string(report.JUnitXML), 0600); err != nil {
		return "", fmt.Errorf("failed to write junit report: %w", err)
	}
	if err := e.saveBundleMetadata(addonPerStepOutputDir, bundleName); err != nil {
		return "", err
	}
	return addonPerStepOutputDir, nil
}

// ReplaceUnsupportedFilenameCharacters Replaces characters '/' and ':', which are unsupported in filnenames on macOS
func ReplaceUnsupportedFilenameCharacters(s string) string {
	s = strings.Replace(s, "/", "-", -1)
	s = strings.Replace(s, ":", "-", -1)
	return s
}

func (e exporter) saveBundleMetadata(outputDir string, bundleName string) error {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err = e.fileManager.Write(filepath.Join(outputDir, metadataFileName), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
