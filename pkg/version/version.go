package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name shown in version output.
const Name = "urcloud_chat"

// These variables are set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Summary returns "urcloud_chat <version> (<short commit>)".
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("%s %s (%s)", Name, v, short)
	}
	return Name + " " + v
}

// Detailed is printed by --version.
func Detailed() string {
	return fmt.Sprintf("%s\n  commit:   %s\n  built:    %s\n  go:       %s\n  platform: %s",
		Summary(), Commit, Date, GoVersion, Platform())
}
