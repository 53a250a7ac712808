// gitspace keeps a directory of git clones in step with a declarative list
// of repositories.
//
// Usage:
//
//	gitspace init [--force]
//	gitspace sync [--concurrency N] [--timeout D] [--depth N] [--link] [--strict]
//	gitspace clean [--target space|config|repositories|symlinks]
//	gitspace symlink [--remove] [--target-dir DIR]
//	gitspace status
//
// Global flags --space, --config-file and --ssh-key override the matching
// config values. Logs go to stderr; --log-level and --log-format tune them.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
