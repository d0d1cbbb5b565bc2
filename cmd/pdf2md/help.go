package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert PDF documents to Markdown via OCR")
	fmt.Fprintln(w, "  auth        Manage the stored API key")
	fmt.Fprintln(w, "  doctor      Check environment readiness")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdf2md help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2md convert <input.pdf|dir|url>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert PDF documents to Markdown using the Mistral OCR service.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    PDF file, directory of PDFs, or document URL")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --format <s>          Output format: md, txt")
	fmt.Fprintln(w, "      --html                Write standalone HTML alongside the Markdown")
	fmt.Fprintln(w, "      --pdf                 Write a searchable PDF (needs Chrome)")
	fmt.Fprintln(w, "      --open                Open the rendered HTML in the browser")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OCR Service:")
	fmt.Fprintln(w, "      --api-key <s>         API key (overrides env and stored key)")
	fmt.Fprintln(w, "      --model <s>           OCR model (empty = service default)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --math <s>            Math mode: mathjax, mathml, off")
	fmt.Fprintln(w, "      --style <s>           CSS style name, file path, or raw CSS")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --raw-html            Pass inline HTML through")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "API key precedence: --api-key > PDF2MD_API_KEY > MISTRAL_API_KEY >")
	fmt.Fprintln(w, "stored credentials ('pdf2md auth set').")
}

// printAuthUsage prints usage for the auth command.
func printAuthUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2md auth <subcommand>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage the stored OCR service API key.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  set [key]   Store an API key (prompts when omitted)")
	fmt.Fprintln(w, "  show        Show the stored key, masked")
	fmt.Fprintln(w, "  path        Print the credentials file location")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2md doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the environment is ready: API key, Chrome (for --pdf),")
	fmt.Fprintln(w, "container/CI detection, and temp directory access.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json    Output machine-readable JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "auth":
		printAuthUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdf2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdf2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
