package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable at link time with -ldflags "-X".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the build metadata in serializable form.
type Info struct {
	Tool      string `json:"tool" msgpack:"tool"`
	Version   string `json:"version" msgpack:"version"`
	GitCommit string `json:"git_commit,omitempty" msgpack:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" msgpack:"build_date,omitempty"`
}

// Current returns the trimmed build metadata.
func Current() Info {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	return Info{
		Tool:      "calfmt",
		Version:   v,
		GitCommit: strings.TrimSpace(GitCommit),
		BuildDate: strings.TrimSpace(BuildDate),
	}
}

// Colored renders the version with each numeric component highlighted;
// color.NoColor turns the highlighting off.
func Colored() string {
	v := Current().Version
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
