package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf <command> [flags] [args]")
	fmt.Fprintln(w, "       mdpdf <file.md> [--css file.css]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Markdown files to PDF")
	fmt.Fprintln(w, "  serve      Run the upload web service")
	fmt.Fprintln(w, "  doctor     Check Chrome and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf convert <file.md>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to PDF. Each PDF is written next to its source")
	fmt.Fprintln(w, "with the same base name.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --css <path>          Stylesheet (.css) for every file")
	fmt.Fprintln(w, "      --style <name>        Built-in or custom style (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pages and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 file error, 2 usage error, 3 render error.")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve an upload form that converts Markdown files to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "      --upload-dir <dir>    Directory for uploads and PDFs (default uploads)")
	fmt.Fprintln(w, "      --css <path>          Stylesheet (.css) for every conversion")
	fmt.Fprintln(w, "      --sanitize            Strip unsafe HTML from uploaded Markdown")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with MDPDF_* variables (default .env)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox settings and the temp directory.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
