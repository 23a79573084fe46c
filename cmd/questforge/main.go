// Package main is the single-binary entrypoint for QuestForge.
// One binary: CLI, reward engine, API server and local store.
package main

import "github.com/questforge/questforge/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
