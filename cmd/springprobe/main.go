package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/springprobe/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose(os.Args[1:])}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	root.SetArgs(cli.DefaultToCheck(root, os.Args[1:]))
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isVerbose scans the raw arguments before cobra parses them, because the
// logger has to be built ahead of command dispatch.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	debug := os.Getenv("SPRINGPROBE_DEBUG")
	return strings.EqualFold(debug, "1") || strings.EqualFold(debug, "true")
}
