// Package settings holds build metadata and per-run options for the
// tablewidth CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tablewidth"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds options for a single invocation.
type Run struct {
	MinLogLevel int8
	ConfigPath  string
	Interactive bool
	NoColor     bool
}

// NewCliParams returns the defaults used when the CLI starts.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Interactive: false,
		NoColor:     false,
	}
}
