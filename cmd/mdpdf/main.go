package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/mdpdf/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "convert":
		return runConvertCmd(ctx, rest, env)
	case cmd == "serve":
		return runServeCmd(ctx, rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "mdpdf %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		return runHelp(rest, env)
	case looksLikeSource(cmd):
		// Bare form: mdpdf file.md [--css file.css]
		return runConvertCmd(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Error: unknown command %q\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// looksLikeSource reports whether arg names an input file rather than a
// command: it has an extension or exists on disk. Validation of the file
// itself is left to the converter.
func looksLikeSource(arg string) bool {
	if arg == "" || strings.HasPrefix(arg, "-") {
		return false
	}
	return filepath.Ext(arg) != "" || fileutil.FileExists(arg)
}
