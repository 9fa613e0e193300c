// Package version carries build metadata injected at link time.
package version

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// UserAgent is the value sent on every outbound probe.
func UserAgent() string {
	return "springprobe/" + Version
}
