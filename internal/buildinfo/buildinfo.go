// Package buildinfo exposes values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/powclient/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	GitCommit = "N/A"
	GitBranch = "N/A"
	GitState  = "N/A"
	BuildDate = "N/A"
)

// Info is a snapshot of the link-time values.
type Info struct {
	Version   string
	GitCommit string
	GitBranch string
	GitState  string
	BuildDate string
}

func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		GitState:  GitState,
		BuildDate: BuildDate,
	}
}

// PrintBuildData writes the build values to w, one per line.
func PrintBuildData(w io.Writer) {
	i := Current()
	fmt.Fprintf(w, "Build version: %s\n", i.Version)
	fmt.Fprintf(w, "Build commit: %s (%s, %s)\n", i.GitCommit, i.GitBranch, i.GitState)
	fmt.Fprintf(w, "Build date: %s\n", i.BuildDate)
}
