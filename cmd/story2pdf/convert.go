package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	story2pdf "github.com/alnah/go-story2pdf"
	"github.com/alnah/go-story2pdf/internal/config"
	"github.com/alnah/go-story2pdf/internal/fileutil"
	"github.com/alnah/go-story2pdf/internal/imagecheck"
	"github.com/alnah/go-story2pdf/internal/imagegen"
	"github.com/alnah/go-story2pdf/internal/storyfile"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadStory          = errors.New("failed to read story file")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrWriteHTML          = errors.New("failed to write HTML file")
	ErrInvalidExtension   = errors.New("file must have .json, .yaml, or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input story2pdf.Input) (*story2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*story2pdf.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
}

// FileToConvert represents a single story file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Warnings   []string
	Duration   time.Duration
}

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	page     *story2pdf.PageSettings
	css      string
	html     bool
	htmlOnly bool

	generateImages bool
	checkImages    bool
	genOpts        imagegen.Options
	checker        *imagecheck.Checker
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	// Resolve input and output paths
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover story files
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no story files found in %s", inputPath)
	}

	// Build service options from the merged config
	opts, err := buildServiceOptions(flags, cfg)
	if err != nil {
		return err
	}

	// An injected loader serves assets unless --asset-path overrides it
	if cfg.Assets.BasePath == "" && env.AssetLoader != nil {
		opts = append(opts, story2pdf.WithAssetLoader(env.AssetLoader))
	}

	// Build page settings
	pageData, err := buildPageSettings(flags, cfg)
	if err != nil {
		return err
	}

	extraCSS, err := resolveExtraCSS(flags.css)
	if err != nil {
		return err
	}

	params := &conversionParams{
		page:           pageData,
		css:            extraCSS,
		html:           flags.outputMode.html,
		htmlOnly:       flags.outputMode.htmlOnly,
		generateImages: cfg.Images.Generate,
		checkImages:    cfg.Images.Check,
		genOpts:        buildGenOptions(cfg),
	}
	if params.checkImages {
		params.checker = imagecheck.NewChecker()
	}

	// Create pool with resolved size
	poolSize := story2pdf.ResolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := newServicePool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Print results
	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Render.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.markdown {
		cfg.Render.Markdown = true
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.marginVertical > 0 {
		cfg.Page.MarginVertical = flags.page.marginVertical
	}
	if flags.page.marginHorizontal > 0 {
		cfg.Page.MarginHorizontal = flags.page.marginHorizontal
	}

	if flags.images.generate {
		cfg.Images.Generate = true
	}
	if flags.images.check {
		cfg.Images.Check = true
	}
	if flags.images.width > 0 {
		cfg.Images.Width = flags.images.width
	}
	if flags.images.height > 0 {
		cfg.Images.Height = flags.images.height
	}
}

// buildServiceOptions translates merged config into service options.
func buildServiceOptions(flags *convertFlags, cfg *config.Config) ([]story2pdf.Option, error) {
	var opts []story2pdf.Option

	if cfg.CSS.Style != "" {
		opts = append(opts, story2pdf.WithStyle(cfg.CSS.Style))
	}
	if cfg.Render.Template != "" {
		opts = append(opts, story2pdf.WithTemplateSet(cfg.Render.Template))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, story2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Render.Markdown {
		opts = append(opts, story2pdf.WithMarkdown())
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, story2pdf.WithTimeout(d))
	}

	return opts, nil
}

// buildGenOptions creates image generation options from config.
func buildGenOptions(cfg *config.Config) imagegen.Options {
	o := imagegen.DefaultOptions()
	if cfg.Images.Width > 0 {
		o.ChapterWidth = cfg.Images.Width
	}
	if cfg.Images.Height > 0 {
		o.ChapterHeight = cfg.Images.Height
	}
	return o
}

// buildPageSettings creates story2pdf.PageSettings from flags and config.
// Returns nil when neither flags nor config set anything (library defaults).
func buildPageSettings(flags *convertFlags, cfg *config.Config) (*story2pdf.PageSettings, error) {
	hasFlags := flags.page.size != "" || flags.page.orientation != "" ||
		flags.page.marginVertical > 0 || flags.page.marginHorizontal > 0
	hasConfig := cfg.Page.Size != "" || cfg.Page.Orientation != "" ||
		cfg.Page.MarginVertical > 0 || cfg.Page.MarginHorizontal > 0

	if !hasFlags && !hasConfig {
		return nil, nil
	}

	// Flags were already merged into cfg, so read from cfg and apply defaults
	ps := &story2pdf.PageSettings{
		Size:             cfg.Page.Size,
		Orientation:      cfg.Page.Orientation,
		MarginVertical:   cfg.Page.MarginVertical,
		MarginHorizontal: cfg.Page.MarginHorizontal,
	}
	if ps.Size == "" {
		ps.Size = story2pdf.PageSizeA4
	}
	if ps.Orientation == "" {
		ps.Orientation = story2pdf.OrientationPortrait
	}
	if ps.MarginVertical == 0 {
		ps.MarginVertical = story2pdf.DefaultMarginVertical
	}
	if ps.MarginHorizontal == 0 {
		ps.MarginHorizontal = story2pdf.DefaultMarginHorizontal
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// resolveExtraCSS resolves the --css flag to CSS content. A value
// containing a path separator is read as a file; anything else is raw CSS.
func resolveExtraCSS(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading CSS file %q: %w", input, err)
		}
		return string(content), nil
	}
	return input, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// storyExtensions are the accepted story file extensions.
var storyExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// discoverFiles finds all story files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateStoryExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !storyExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for a story file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateStoryExtension checks that the file has a supported extension.
func validateStoryExtension(path string) error {
	if !storyExtensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > story2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, story2pdf.MaxPoolSize)
	}
	return nil
}

// convertBatch processes files concurrently using the service pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("acquiring service: %w", err),
					}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single story file and returns the result.
func convertFile(ctx context.Context, service Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func() ConversionResult {
		result.Duration = time.Since(start)
		return result
	}

	doc, err := storyfile.Load(f.InputPath)
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadStory, err)
		return finish()
	}

	coverImage := doc.CoverImage
	if params.generateImages {
		coverImage = imagegen.FillMissing(&doc.Story, coverImage, params.genOpts)
	}

	if params.checkImages && params.checker != nil {
		for _, p := range params.checker.CheckStory(ctx, &doc.Story, coverImage) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("chapter %d image unreachable: %s", p.Chapter, p.Reason))
		}
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		return finish()
	}

	res, err := service.Convert(ctx, story2pdf.Input{
		Story:      doc.Story,
		CoverImage: coverImage,
		CSS:        params.css,
		Page:       params.page,
		HTMLOnly:   params.htmlOnly,
	})
	if err != nil {
		result.Err = err
		return finish()
	}

	if params.html || params.htmlOnly {
		htmlPath := strings.TrimSuffix(f.OutputPath, ".pdf") + ".html"
		// #nosec G306 -- rendered HTML is meant to be readable
		if err := os.WriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
			return finish()
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
			return finish()
		}
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.PDF, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePDF, err)
		return finish()
	}

	return finish()
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		for _, warn := range r.Warnings {
			fmt.Fprintf(env.Stderr, "WARN %s: %s\n", r.InputPath, warn)
		}

		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
