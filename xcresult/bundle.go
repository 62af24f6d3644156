package xcresult

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/log"
	"github.com/bitrise-io/go-utils/pathutil"
	"howett.net/plist"
)

const minSupportedDocumentMajorVersion = 3

type bundleInfo struct {
	Version struct {
		Major int `plist:"major"`
		Minor int `plist:"minor"`
	} `plist:"version"`
}

// CheckBundle makes sure pth is an xcresult bundle which xcresulttool can read as JSON.
func CheckBundle(pth string) error {
	if exist, err := pathutil.IsDirExists(pth); err != nil {
		return err
	} else if !exist {
		return fmt.Errorf("xcresult bundle does not exist: %s", pth)
	}

	if filepath.Ext(pth) != ".xcresult" {
		log.Warnf("Test result bundle (%s) has no .xcresult extension", pth)
	}

	infoPth := filepath.Join(pth, "Info.plist")
	if exist, err := pathutil.IsPathExists(infoPth); err != nil {
		return err
	} else if !exist {
		return fmt.Errorf("no Info.plist found in the xcresult bundle: %s", infoPth)
	}

	major, err := documentMajorVersion(infoPth)
	if err != nil {
		return fmt.Errorf("failed to read document version from %s: %w", infoPth, err)
	}
	log.Debugf("xcresult document major version: %d", major)

	if major < minSupportedDocumentMajorVersion {
		return fmt.Errorf("unsupported xcresult document version (%d), at least version %d (Xcode 11) is required", major, minSupportedDocumentMajorVersion)
	}
	return nil
}

func documentMajorVersion(pth string) (int, error) {
	content, err := fileutil.ReadBytesFromFile(pth)
	if err != nil {
		return -1, err
	}

	var info bundleInfo
	if _, err := plist.Unmarshal(content, &info); err != nil {
		return -1, err
	}
	return info.Version.Major, nil
}
