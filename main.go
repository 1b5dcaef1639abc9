package main

import (
	"runtime/debug"

	"github.com/thead76/PathFinder/cmd"
)

// Release builds stamp these with
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "0.2.0"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// Plain `go build` / `go install` gets no ldflags; pick the commit up
	// from the embedded VCS metadata instead.
	if commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			commit = s.Value[:7]
			return
		}
	}
}

func main() {
	cmd.Execute(version, commit, date)
}
