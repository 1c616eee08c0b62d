package mkbrr

import (
	"fmt"
	"runtime"
	"strings"

	"marquee/internal/services"
)

// Platform names the release archive and install folder for one OS and
// architecture.
type Platform struct {
	File   string
	Folder string
	// Windows releases ship a .exe inside a zip and carry no exec bit.
	Windows bool
}

var platforms = map[string]map[string]Platform{
	"windows": {
		"amd64": {File: "windows_x86_64.zip", Folder: "windows/x86_64", Windows: true},
	},
	"darwin": {
		"arm64": {File: "darwin_arm64.tar.gz", Folder: "macos/arm64"},
		"amd64": {File: "darwin_x86_64.tar.gz", Folder: "macos/x86_64"},
	},
	"linux": {
		"amd64": {File: "linux_x86_64.tar.gz", Folder: "linux/amd64"},
		"arm64": {File: "linux_arm64.tar.gz", Folder: "linux/arm64"},
		"arm":   {File: "linux_arm.tar.gz", Folder: "linux/arm"},
	},
	"freebsd": {
		"amd64": {File: "freebsd_x86_64.tar.gz", Folder: "freebsd/x86_64"},
	},
}

// CurrentPlatform resolves the platform of the running binary.
func CurrentPlatform() (Platform, error) {
	return PlatformFor(runtime.GOOS, runtime.GOARCH)
}

// PlatformFor resolves a GOOS/GOARCH pair.
func PlatformFor(goos, goarch string) (Platform, error) {
	goos = strings.ToLower(strings.TrimSpace(goos))
	goarch = strings.ToLower(strings.TrimSpace(goarch))
	if arches, ok := platforms[goos]; ok {
		if p, ok := arches[goarch]; ok {
			return p, nil
		}
	}
	return Platform{}, services.Wrap(services.ErrConfiguration, "mkbrr", "platform",
		fmt.Sprintf("unsupported platform %s/%s", goos, goarch), nil)
}

// BinaryName is the executable file name inside the archive.
func (p Platform) BinaryName() string {
	if p.Windows {
		return "mkbrr.exe"
	}
	return "mkbrr"
}

func (p Platform) zipped() bool {
	return strings.HasSuffix(p.File, ".zip")
}
