// Package main is the single-binary entrypoint for MoodMuse.
// One binary runs the API server, the tracking engine, and the CLI.
package main

import "github.com/moodmuse-app/moodmuse/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
