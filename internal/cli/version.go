package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fade/internal/buildinfo"
	"github.com/aidanlsb/fade/internal/ui"
)

const defaultModulePath = "github.com/aidanlsb/fade"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fade version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info)
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fade %s\n", info.Version)

		tbl := ui.NewTable(2)
		tbl.AddRow("module", info.ModulePath)
		if info.Commit != "" {
			tbl.AddRow("commit", info.Commit)
		}
		if info.CommitTime != "" {
			tbl.AddRow("commit_time", info.CommitTime)
		}
		tbl.AddRow("go", info.GoVersion)
		tbl.AddRow("platform", info.GOOS+"/"+info.GOARCH)
		tbl.AddRow("modified", strconv.FormatBool(info.Modified))
		fmt.Fprint(out, tbl.String())

		return nil
	},
}

// currentVersionInfo prefers the module's embedded build info and fills any
// gaps from the ldflags-stamped buildinfo values.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		info.Version = releaseVersion(bi.Main.Version)
		info.ModulePath = firstNonEmpty(bi.Main.Path, info.ModulePath)
		info.GoVersion = firstNonEmpty(bi.GoVersion, info.GoVersion)
		info.GOOS = firstNonEmpty(settings["GOOS"], info.GOOS)
		info.GOARCH = firstNonEmpty(settings["GOARCH"], info.GOARCH)
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	if info.Version == "devel" {
		info.Version = releaseVersion(buildinfo.Version)
	}
	info.Commit = firstNonEmpty(info.Commit, buildinfo.Commit)
	info.CommitTime = firstNonEmpty(info.CommitTime, buildinfo.Date)
	return info
}

// releaseVersion maps the toolchain's placeholder versions to "devel".
func releaseVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "devel"
	}
	return v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
