package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func Test_GivenWrongArgumentCount_WhenRun_ThenPrintsUsageAndFails(t *testing.T) {
	for _, args := range [][]string{
		{"/usr/local/bin/xcresult2junit"},
		{"/usr/local/bin/xcresult2junit", "A.xcresult", "B.xcresult"},
	} {
		// Given
		var stdout, stderr bytes.Buffer

		// When
		exitCode := run(args, &stdout, &stderr)

		// Then
		assert.Equal(t, 1, exitCode)
		assert.Equal(t, "usage: xcresult2junit Foobar.xcresult\n", stderr.String())
		assert.Empty(t, stdout.String())
	}
}

func Test_GivenMissingBundle_WhenRun_ThenFailsWithoutXML(t *testing.T) {
	// Given
	var stdout, stderr bytes.Buffer
	bundlePath := filepath.Join(t.TempDir(), "Missing.xcresult")

	// When
	exitCode := run([]string{"xcresult2junit", bundlePath}, &stdout, &stderr)

	// Then
	assert.Equal(t, 1, exitCode)
	assert.Empty(t, stdout.String())
}

func Test_GivenFailingTool_WhenRun_ThenFailsWithoutXML(t *testing.T) {
	// Given
	bundlePath := filepath.Join(t.TempDir(), "Test.xcresult")
	require.NoError(t, os.MkdirAll(bundlePath, 0755))
	info := map[string]interface{}{"version": map[string]interface{}{"major": 3, "minor": 0}}
	content, err := plist.Marshal(info, plist.XMLFormat)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(bundlePath, "Info.plist"), content, 0644))

	t.Setenv("XCRESULT2JUNIT_XCRESULTTOOL", "false")
	t.Setenv("XCRESULT2JUNIT_LEGACY_FORMAT", "no")
	var stdout, stderr bytes.Buffer

	// When
	exitCode := run([]string{"xcresult2junit", bundlePath}, &stdout, &stderr)

	// Then
	assert.Equal(t, 1, exitCode)
	assert.Empty(t, stdout.String())
}
