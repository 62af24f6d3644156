package xcresulttool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordJSON = `{"actions": {"_values": [{"actionResult": {"testsRef": {"id": {"_value": "0~ref"}}}}]}}`

func Test_GivenXcode16Tool_WhenQuerying_ThenUsesLegacyFlagAndDetectsVersionOnce(t *testing.T) {
	// Given
	tool := newFakeTool(t, "23021", recordJSON, 0)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyAuto)
	require.NoError(t, err)

	// When
	root, err := resolver.Root("/tmp/Test.xcresult")
	require.NoError(t, err)
	_, err = resolver.Object("/tmp/Test.xcresult", "0~ref")
	require.NoError(t, err)

	// Then
	assert.True(t, root.Has("actions"))
	assert.Equal(t, []string{
		"version",
		"get --format json --legacy --path /tmp/Test.xcresult",
		"get --format json --legacy --path /tmp/Test.xcresult --id 0~ref",
	}, tool.calls(t))
}

func Test_GivenXcode15Tool_WhenQuerying_ThenOmitsLegacyFlag(t *testing.T) {
	// Given
	tool := newFakeTool(t, "22608", recordJSON, 0)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyAuto)
	require.NoError(t, err)

	// When
	_, err = resolver.Object("/tmp/Test.xcresult", "0~ref")

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{
		"version",
		"get --format json --path /tmp/Test.xcresult --id 0~ref",
	}, tool.calls(t))
}

func Test_GivenExplicitLegacyMode_WhenQuerying_ThenSkipsVersionDetection(t *testing.T) {
	tests := []struct {
		mode LegacyMode
		want string
	}{
		{mode: LegacyOn, want: "get --format json --legacy --path /tmp/Test.xcresult"},
		{mode: LegacyOff, want: "get --format json --path /tmp/Test.xcresult"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			// Given
			tool := newFakeTool(t, "23021", recordJSON, 0)
			resolver, err := NewResolver(newFactory(), tool.command(), tt.mode)
			require.NoError(t, err)

			// When
			_, err = resolver.Root("/tmp/Test.xcresult")

			// Then
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, tool.calls(t))
		})
	}
}

func Test_GivenUndetectableVersion_WhenQuerying_ThenOmitsLegacyFlag(t *testing.T) {
	// Given
	tool := newFakeTool(t, "", recordJSON, 0)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyAuto)
	require.NoError(t, err)

	// When
	_, err = resolver.Root("/tmp/Test.xcresult")

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"version", "get --format json --path /tmp/Test.xcresult"}, tool.calls(t))
}

func Test_GivenFailingTool_WhenQuerying_ThenReportsStderr(t *testing.T) {
	// Given
	tool := newFakeTool(t, "22608", recordJSON, 1)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyOff)
	require.NoError(t, err)

	// When
	_, err = resolver.Root("/tmp/Test.xcresult")

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error: This bundle is not valid")
}

func Test_GivenNonJSONOutput_WhenQuerying_ThenFails(t *testing.T) {
	// Given
	tool := newFakeTool(t, "22608", "not json", 0)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyOff)
	require.NoError(t, err)

	// When
	_, err = resolver.Root("/tmp/Test.xcresult")

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse the output of")
}

func Test_GivenMissingTool_WhenQuerying_ThenFails(t *testing.T) {
	// Given
	tool := []string{filepath.Join(t.TempDir(), "missing-xcresulttool")}
	resolver, err := NewResolver(newFactory(), tool, LegacyOff)
	require.NoError(t, err)

	// When
	_, err = resolver.Root("/tmp/Test.xcresult")

	// Then
	require.Error(t, err)
}

func Test_GivenEmptyID_WhenObject_ThenFailsWithoutQuerying(t *testing.T) {
	// Given
	tool := newFakeTool(t, "22608", recordJSON, 0)
	resolver, err := NewResolver(newFactory(), tool.command(), LegacyOff)
	require.NoError(t, err)

	// When
	_, err = resolver.Object("/tmp/Test.xcresult", "")

	// Then
	require.EqualError(t, err, "empty object id")
	assert.Empty(t, tool.calls(t))
}

func TestNewResolver_InvalidInput(t *testing.T) {
	_, err := NewResolver(newFactory(), nil, LegacyAuto)
	require.Error(t, err)

	_, err = NewResolver(newFactory(), DefaultCommand, LegacyMode("sometimes"))
	require.Error(t, err)
}

func TestParseLegacyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LegacyMode
		wantErr bool
	}{
		{in: "", want: LegacyAuto},
		{in: "auto", want: LegacyAuto},
		{in: "YES", want: LegacyOn},
		{in: " no ", want: LegacyOff},
		{in: "true", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLegacyMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("xcresulttool version 23021, format version 3.53 (current)")
	require.NoError(t, err)
	require.Equal(t, "23021.0.0", v.String())

	v, err = parseVersion("xcresulttool version 22608, format version 3.49 (current)")
	require.NoError(t, err)
	require.True(t, v.LessThan(legacyFlagMinVersion))

	_, err = parseVersion("xcrun: error: unable to find utility \"xcresulttool\"")
	require.Error(t, err)
}

// Helpers

func newFactory() command.Factory {
	return command.NewFactory(env.NewRepository())
}

type fakeTool struct {
	script string
	log    string
}

// newFakeTool writes a shell script standing in for `xcrun xcresulttool`.
// An empty buildNumber makes the version subcommand fail.
func newFakeTool(t *testing.T, buildNumber, getOutput string, getExitCode int) fakeTool {
	dir := t.TempDir()
	tool := fakeTool{
		script: filepath.Join(dir, "xcresulttool.sh"),
		log:    filepath.Join(dir, "calls.log"),
	}

	versionCmd := `echo "xcresulttool version ` + buildNumber + `, format version 3.53 (current)"`
	if buildNumber == "" {
		versionCmd = `echo "error: unknown subcommand" >&2; exit 64`
	}

	script := fmt.Sprintf(`#!/bin/sh
echo "$*" >> '%s'
if [ "$1" = "version" ]; then
	%s
	exit 0
fi
if [ %d -ne 0 ]; then
	echo "Error: This bundle is not valid" >&2
	exit %d
fi
cat <<'JSON'
%s
JSON
`, tool.log, versionCmd, getExitCode, getExitCode, getOutput)

	require.NoError(t, os.WriteFile(tool.script, []byte(script), 0700))
	return tool
}

func (f fakeTool) command() []string {
	return []string{"sh", f.script}
}

func (f fakeTool) calls(t *testing.T) []string {
	content, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}
