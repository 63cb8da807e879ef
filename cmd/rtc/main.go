package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rgonek/richtext-converter/fontmapper"
	"github.com/rgonek/richtext-converter/markdown"
	"github.com/rgonek/richtext-converter/paste"
	"github.com/rgonek/richtext-converter/richtext"
	"go.yaml.in/yaml/v3"
)

const (
	presetDefault = "default"
	presetStrict  = "strict"
	presetLoose   = "loose"
	presetLegacy  = "legacy"
	presetReview  = "review"

	formatHTML     = "html"
	formatMarkdown = "markdown"
)

func presetConfig(preset string) (richtext.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDefault:
		return richtext.Config{}, nil
	case presetStrict:
		return richtext.Config{Strictness: richtext.StrictnessStrict}, nil
	case presetLoose:
		return richtext.Config{Strictness: richtext.StrictnessLoose}, nil
	case presetLegacy:
		return richtext.Config{Strictness: richtext.StrictnessLegacy}, nil
	case presetReview:
		return richtext.Config{
			Strictness: richtext.StrictnessLoose,
			Highlight:  true,
		}, nil
	default:
		return richtext.Config{}, fmt.Errorf("unknown preset %q (allowed: default, strict, loose, legacy, review)", preset)
	}
}

// fileConfig is the YAML configuration file layout.
type fileConfig struct {
	Strictness   richtext.Strictness      `yaml:"strictness"`
	Highlight    bool                     `yaml:"highlight"`
	FontMappings []fontmapper.ConfigEntry `yaml:"fontMappings"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig layers the preset, the config file and the strictness and
// highlight flags, in that order.
func resolveConfig(preset string, file fileConfig, strictness string, highlight bool) (richtext.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return richtext.Config{}, err
	}

	if file.Strictness != 0 {
		cfg.Strictness = file.Strictness
	}
	if file.Highlight {
		cfg.Highlight = true
	}
	if strictness != "" {
		s, err := richtext.ParseStrictness(strictness)
		if err != nil {
			return richtext.Config{}, err
		}
		cfg.Strictness = s
	}
	if highlight {
		cfg.Highlight = true
	}

	return cfg, nil
}

type options struct {
	reverse bool
	paste   bool
	format  string
	config  richtext.Config
	fonts   []fontmapper.ConfigEntry
}

func convert(opts options, input string, out io.Writer, logger *slog.Logger) error {
	if opts.format != formatHTML && opts.format != formatMarkdown {
		return fmt.Errorf("unknown format %q (allowed: html, markdown)", opts.format)
	}
	if opts.paste && (opts.reverse || opts.format != formatHTML) {
		return fmt.Errorf("-paste requires html input")
	}

	cfg := opts.config
	cfg.Logger = logger
	processor, err := richtext.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var result richtext.Result
	switch {
	case opts.reverse && opts.format == formatMarkdown:
		result, err = markdown.NewExporter(processor).Export(input)
	case opts.reverse:
		result, err = processor.ToView(input)
	case opts.format == formatMarkdown:
		result, err = markdown.NewImporter(processor).Import(input)
	case opts.paste:
		result, err = pasteToData(processor, opts.fonts, input, logger)
	default:
		result, err = processor.ToData(input)
	}
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message, "type", w.Type, "element", w.Element)
	}
	_, err = fmt.Fprintln(out, result.Markup)
	return err
}

func pasteToData(processor *richtext.Processor, fonts []fontmapper.ConfigEntry, input string, logger *slog.Logger) (richtext.Result, error) {
	preparer, err := paste.New(paste.Config{FontMappings: fonts, Logger: logger})
	if err != nil {
		return richtext.Result{}, fmt.Errorf("invalid font mappings: %w", err)
	}
	doc, err := preparer.Prepare(input)
	if err != nil {
		return richtext.Result{}, err
	}
	warnings := processor.FilterToData(doc.Root())
	markup, err := richtext.WriteData(doc)
	if err != nil {
		return richtext.Result{}, err
	}
	return richtext.Result{Markup: markup, Warnings: warnings}, nil
}

func main() {
	reverse := flag.Bool("reverse", false, "Convert stored RichText XML to view HTML")
	format := flag.String("format", formatHTML, "View format: html|markdown")
	pasted := flag.Bool("paste", false, "Treat input as pasted HTML (sanitize and map fonts)")
	preset := flag.String("preset", presetDefault, "Preset: default|strict|loose|legacy|review")
	strictness := flag.String("strictness", "", "Override strictness: strict|loose|legacy")
	highlight := flag.Bool("highlight", false, "Keep highlight marks")
	configFile := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rtc [options] <input-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	file, err := loadFileConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := resolveConfig(*preset, file, *strictness, *highlight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid preset: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		reverse: *reverse,
		paste:   *pasted,
		format:  *format,
		config:  cfg,
		fonts:   file.FontMappings,
	}
	if err := convert(opts, string(data), os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error converting file: %v\n", err)
		os.Exit(1)
	}
}
