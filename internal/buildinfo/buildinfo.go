// Package buildinfo holds release metadata stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/fade/internal/buildinfo.Version=v0.3.0"
//
// Local builds leave them empty and fall back to debug.ReadBuildInfo.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
