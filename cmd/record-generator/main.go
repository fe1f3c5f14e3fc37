// Package main provides the CLI entrypoint for record-generator.
//
// record-generator scans Go packages for //record:generate directives on
// accessor-style types and emits immutable record counterparts:
//   - a value struct with unexported fields and getters only
//   - a constructor converting from the source type, rewriting registered
//     field types to their generated counterparts
//   - field-name constants, factory helpers and wither methods
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"record-generator/internal/config"
	"record-generator/internal/emit"
	"record-generator/internal/registry"
	"record-generator/internal/render"
	"record-generator/internal/scan"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML run configuration file")
		patterns   = flag.String("packages", "", "comma-separated package patterns to scan")
		outDir     = flag.String("out", "", "output directory for generated files")
		pkgName    = flag.String("package", "", "package name for generated files")
		strict     = flag.Bool("strict", false, "treat warnings as errors")
		debug      = flag.Bool("debug", false, "dump scanned requests before generating")
	)

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "record-generator:", err)
		os.Exit(1)
	}

	// Flags override file values.
	if *patterns != "" {
		cfg.Packages = strings.Split(*patterns, ",")
	}

	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	if *pkgName != "" {
		cfg.Package = *pkgName
	}

	if *strict {
		cfg.Strict = true
	}

	if cfg.Package == "" {
		fmt.Fprintln(os.Stderr, "record-generator: a target package name is required (-package)")
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "record-generator:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	os.Exit(run(logger, cfg, *debug))
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(logger *zap.Logger, cfg *config.File, debug bool) int {
	requests, diags, err := scan.New().Load(cfg.Packages...)
	if err != nil {
		logger.Error("scan failed", zap.Error(err))
		return 1
	}

	if debug {
		spew.Fdump(os.Stderr, requests)
	}

	logger.Info("scan complete",
		zap.Int("requests", len(requests)),
		zap.Int("warnings", len(diags.Warnings)))

	ctrl := emit.NewController(
		registry.Build(requests),
		render.NewGoRenderer(cfg.Package),
		render.DirSink{Dir: cfg.OutDir},
	)

	report := ctrl.Process(requests)
	diags.Merge(report.Diagnostics())

	for _, w := range diags.Warnings {
		logger.Warn(w.Message, zap.String("code", w.Code), zap.String("target", w.Target))
	}

	for _, e := range diags.Errors {
		logger.Error(e.Message, zap.String("code", e.Code), zap.String("target", e.Target))
	}

	logger.Info("generation complete",
		zap.Int("emitted", len(report.Emitted)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
		zap.Strings("targets", report.Emitted))

	if diags.HasErrors() || (cfg.Strict && len(diags.Warnings) > 0) {
		return 1
	}

	return 0
}
