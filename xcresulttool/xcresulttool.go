// Package xcresulttool queries xcresult bundles with Apple's xcresulttool.
package xcresulttool

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-steplib/xcresult2junit/document"
	"github.com/hashicorp/go-version"
)

// LegacyMode controls the --legacy flag of `xcresulttool get`.
type LegacyMode string

// Legacy modes ...
const (
	LegacyAuto LegacyMode = "auto"
	LegacyOn   LegacyMode = "yes"
	LegacyOff  LegacyMode = "no"
)

// DefaultCommand ...
var DefaultCommand = []string{"xcrun", "xcresulttool"}

// Xcode 16 (xcresulttool 23000+) deprecated the JSON object API: it is only
// available with --legacy.
var legacyFlagMinVersion = version.Must(version.NewVersion("23000"))

var versionPattern = regexp.MustCompile(`xcresulttool version ([0-9]+)`)

// ParseLegacyMode ...
func ParseLegacyMode(s string) (LegacyMode, error) {
	switch mode := LegacyMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", LegacyAuto:
		return LegacyAuto, nil
	case LegacyOn, LegacyOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid legacy format mode %q, available: %s, %s, %s", s, LegacyAuto, LegacyOn, LegacyOff)
	}
}

// Resolver loads xcresult documents by running `xcresulttool get --format json`.
type Resolver struct {
	factory    command.Factory
	tool       []string
	legacyMode LegacyMode

	legacyDecided bool
	legacy        bool
}

// NewResolver ...
func NewResolver(factory command.Factory, tool []string, legacyMode LegacyMode) (*Resolver, error) {
	if len(tool) == 0 {
		return nil, errors.New("no xcresulttool command provided")
	}
	if _, err := ParseLegacyMode(string(legacyMode)); err != nil {
		return nil, err
	}

	return &Resolver{
		factory:    factory,
		tool:       tool,
		legacyMode: legacyMode,
	}, nil
}

// Root returns the ActionsInvocationRecord of the bundle.
func (r *Resolver) Root(bundlePath string) (document.Node, error) {
	return r.get(bundlePath, "")
}

// Object returns the document with the given id.
func (r *Resolver) Object(bundlePath, id string) (document.Node, error) {
	if id == "" {
		return document.Node{}, errors.New("empty object id")
	}
	return r.get(bundlePath, id)
}

// Version returns the xcresulttool version, for example 23021 for Xcode 16.
func (r *Resolver) Version() (*version.Version, error) {
	cmd := r.create([]string{"version"}, nil)
	log.Debugf("$ %s", cmd.PrintableCommandArgs())

	out, err := cmd.RunAndReturnTrimmedCombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w, output: %s", cmd.PrintableCommandArgs(), err, out)
	}

	return parseVersion(out)
}

func (r *Resolver) get(bundlePath, id string) (document.Node, error) {
	args := []string{"get", "--format", "json"}
	if r.useLegacyFlag() {
		args = append(args, "--legacy")
	}
	args = append(args, "--path", bundlePath)
	if id != "" {
		args = append(args, "--id", id)
	}

	var stdout, stderr bytes.Buffer
	cmd := r.create(args, &command.Opts{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	log.Debugf("$ %s", cmd.PrintableCommandArgs())

	if err := cmd.Run(); err != nil {
		if !errorutil.IsExitStatusError(err) && stderr.Len() == 0 {
			return document.Node{}, fmt.Errorf("failed to run %s: %w", cmd.PrintableCommandArgs(), err)
		}
		return document.Node{}, fmt.Errorf("%s failed: %w, stderr: %s", cmd.PrintableCommandArgs(), err, strings.TrimSpace(stderr.String()))
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Debugf("xcresulttool stderr: %s", msg)
	}

	node, err := document.Parse(stdout.Bytes())
	if err != nil {
		return document.Node{}, fmt.Errorf("failed to parse the output of %s: %w", cmd.PrintableCommandArgs(), err)
	}
	return node, nil
}

func (r *Resolver) useLegacyFlag() bool {
	if r.legacyDecided {
		return r.legacy
	}
	r.legacyDecided = true

	switch r.legacyMode {
	case LegacyOn:
		r.legacy = true
	case LegacyOff:
		r.legacy = false
	default:
		toolVersion, err := r.Version()
		if err != nil {
			log.Warnf("Failed to detect xcresulttool version, querying without --legacy: %s", err)
			r.legacy = false
			break
		}
		r.legacy = toolVersion.GreaterThanOrEqual(legacyFlagMinVersion)
		log.Debugf("xcresulttool version: %s, --legacy: %v", toolVersion, r.legacy)
	}

	return r.legacy
}

func (r *Resolver) create(args []string, opts *command.Opts) command.Command {
	cmdArgs := make([]string, 0, len(r.tool)-1+len(args))
	cmdArgs = append(cmdArgs, r.tool[1:]...)
	cmdArgs = append(cmdArgs, args...)
	return r.factory.Create(r.tool[0], cmdArgs, opts)
}

// parseVersion reads the build number from output like
// "xcresulttool version 23021, format version 3.53 (current)".
func parseVersion(out string) (*version.Version, error) {
	match := versionPattern.FindStringSubmatch(out)
	if match == nil {
		return nil, fmt.Errorf("unexpected xcresulttool version output: %s", out)
	}
	return version.NewVersion(match[1])
}
