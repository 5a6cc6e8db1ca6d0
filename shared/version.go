package shared

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	appVersion   = "1.0.0-SNAPSHOT"
	buildVersion = "_TAG_"
)

func init() {
	if buildVersion != ("_" + "TAG" + "_") {
		// not running in a development environment
		appVersion = buildVersion
	}
}

// GetVersion returns the current application version.
func GetVersion() string {
	return appVersion
}

// GetVersionSemver returns the version without the leading "v" of release tags.
func GetVersionSemver() string {
	return strings.TrimPrefix(GetVersion(), "v")
}

// IsPrerelease returns true if the version string contains a prerelease tag.
func IsPrerelease(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		// Fall back to string check if semver parsing fails
		return strings.Contains(version, "-")
	}
	return v.Prerelease() != ""
}

// WindowTitle returns the demo window title, marking prerelease builds.
func WindowTitle(name string) string {
	version := GetVersionSemver()
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Sprintf("%s %s", name, version)
	}
	if IsPrerelease(version) {
		return fmt.Sprintf("%s %d.%d.%d (%s)", name, v.Major(), v.Minor(), v.Patch(), strings.ToLower(v.Prerelease()))
	}
	return fmt.Sprintf("%s %s", name, v.String())
}
