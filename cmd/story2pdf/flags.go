package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size             string
	orientation      string
	marginVertical   float64
	marginHorizontal float64
}

// imageFlags holds image handling flags.
type imageFlags struct {
	generate bool
	check    bool
	width    int
	height   int
}

// assetFlags holds asset-related flags (style, templates, custom asset path).
type assetFlags struct {
	style     string // Style name, CSS file path, or raw CSS
	template  string // Template set name
	assetPath string // Override asset directory
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	markdown   bool
	css        string
	page       pageFlags
	images     imageFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.marginVertical, "margin-vertical", 0, "top/bottom margin in cm (0.5-8.0)")
	fs.Float64Var(&f.marginHorizontal, "margin-horizontal", 0, "left/right margin in cm (0.5-8.0)")
}

// addImageFlags adds image handling flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.BoolVar(&f.generate, "generate-images", false, "fill missing images with generated URLs")
	fs.BoolVar(&f.check, "check-images", false, "probe image URLs before rendering")
	fs.IntVar(&f.width, "image-width", 0, "generated chapter image width in pixels")
	fs.IntVar(&f.height, "image-height", 0, "generated chapter image height in pixels")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or raw CSS")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.markdown, "markdown", false, "render chapter content as Markdown")
	fs.StringVar(&f.css, "css", "", "extra CSS appended after the style (raw CSS or file path)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addImageFlags(fs, &f.images)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// termsFlags holds flags for the terms command.
type termsFlags struct {
	common commonFlags
	max    int
}

// parseTermsFlags parses terms command flags and returns positional args.
func parseTermsFlags(args []string) (*termsFlags, []string, error) {
	fs := flag.NewFlagSet("terms", flag.ContinueOnError)
	f := &termsFlags{}

	fs.IntVarP(&f.max, "max", "n", 0, "max candidates per chapter (0 = default)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printTermsUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
