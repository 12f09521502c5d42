package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: story2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Render story files to PDF books")
	fmt.Fprintln(w, "  terms      List vocabulary candidates per chapter")
	fmt.Fprintln(w, "  doctor     Check the environment for PDF generation")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'story2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: story2pdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render story files (.json, .yaml, .yml) to PDF books.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Story file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin-vertical <f>   Top/bottom margin in cm (0.5-8.0)")
	fmt.Fprintln(w, "      --margin-horizontal <f> Left/right margin in cm (0.5-8.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --markdown              Render chapter content as Markdown")
	fmt.Fprintln(w, "      --style <s>             Style name, CSS file path, or raw CSS")
	fmt.Fprintln(w, "      --css <s>               Extra CSS appended after the style (raw CSS or file path)")
	fmt.Fprintln(w, "      --template <s>          Template set name")
	fmt.Fprintln(w, "      --asset-path <path>     Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --generate-images       Fill missing images with generated URLs")
	fmt.Fprintln(w, "      --check-images          Probe image URLs before rendering")
	fmt.Fprintln(w, "      --image-width <n>       Generated chapter image width in pixels")
	fmt.Fprintln(w, "      --image-height <n>      Generated chapter image height in pixels")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --html                  Output HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only             Output HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
}

// printTermsUsage prints usage for the terms command.
func printTermsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: story2pdf terms <story-file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List vocabulary candidates per chapter. Words already present in the")
	fmt.Fprintln(w, "chapter's terminology map are printed with their definitions.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -n, --max <n>    Max candidates per chapter (0 = default)")
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
	case "terms":
		printTermsUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: story2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome availability and environment for PDF generation.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: story2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: story2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
