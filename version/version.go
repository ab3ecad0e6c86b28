// Package version holds build information, set with -ldflags:
//
//	go build -ldflags "-X github.com/jackzampolin/promptlab/version.GitRelease=v0.1.0 \
//	  -X github.com/jackzampolin/promptlab/version.GitCommit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	GitRelease    = "dev"
	GitCommit     = ""
	GitCommitDate = ""
	GoInfo        = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = s.Value
			}
		case "vcs.time":
			if GitCommitDate == "" {
				GitCommitDate = s.Value
			}
		}
	}
	if GitRelease == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		GitRelease = info.Main.Version
	}
}

// Info is the build information printed by "promptlab version".
type Info struct {
	Release    string `json:"release" yaml:"release"`
	Go         string `json:"go" yaml:"go"`
	Commit     string `json:"commit,omitempty" yaml:"commit,omitempty"`
	CommitDate string `json:"commit_date,omitempty" yaml:"commit_date,omitempty"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Release:    GitRelease,
		Go:         GoInfo,
		Commit:     GitCommit,
		CommitDate: GitCommitDate,
	}
}
