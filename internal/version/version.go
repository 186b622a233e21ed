package version

import (
	"fmt"
	"runtime"
)

// Injected by ldflags at release time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// GetVersionString returns the bare version, suitable for protocol
// handshakes and the CLI --version flag.
func GetVersionString() string {
	return Version
}

// GetFullVersionString returns the multi-line banner printed at startup.
func GetFullVersionString() string {
	return fmt.Sprintf("PatLens %s\nBuilt: %s\nGo: %s",
		Version, BuildTime, runtime.Version())
}
