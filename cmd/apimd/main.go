// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

// apimd generates Markdown documentation from a JSON array of API endpoints.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/woozymasta/apimd"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/apimd"
	_buildTime string
)

// cliOptions describes apimd CLI flags.
type cliOptions struct {
	InputPath     string `short:"f" long:"file" env:"APIMD_FILE" description:"Path to endpoints file to read"`
	OutputPath    string `short:"s" long:"save-to-file" env:"APIMD_SAVE_TO_FILE" description:"Save markdown to this file instead of printing it to stdout"`
	Format        string `long:"format" env:"APIMD_FORMAT" description:"Input format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	TemplatePath  string `short:"t" long:"template-file" env:"APIMD_TEMPLATE_FILE" description:"Path to custom markdown template (.gotmpl)"`
	LogLevel      string `short:"l" long:"log-level" env:"APIMD_LOG_LEVEL" description:"Diagnostics log level" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"disabled" default:"warn"`
	Workers       int    `short:"w" long:"workers" env:"APIMD_WORKERS" description:"Parse and render endpoints with this many workers" default:"1"`
	SkipInvalid   bool   `long:"skip-invalid" env:"APIMD_SKIP_INVALID" description:"Skip invalid endpoints with a warning instead of aborting"`
	PrintTemplate bool   `long:"print-template" description:"Print built-in markdown template and exit"`
	Version       bool   `short:"V" long:"version" description:"Print version information"`
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "apimd"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := runner.parseAndExecute(args)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// parseAndExecute parses CLI arguments and runs the selected action.
func (runner *cliRunner) parseAndExecute(args []string) error {
	options := &cliOptions{}
	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.LongDescription = strings.TrimSpace(fmt.Sprintf(`
Convert a JSON array of HTTP API endpoints into Markdown documentation.
Prints usage when no input file is given.

Examples:
> $ %s -f api.json > API.md
> $ %s -f api.yaml -s API.md --skip-invalid
`, runner.programName, runner.programName))

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	switch {
	case options.Version:
		runner.printVersionInfo()
		return nil

	case options.PrintTemplate:
		return runner.runPrintTemplate()

	case strings.TrimSpace(options.InputPath) == "":
		parser.WriteHelp(runner.stdout)
		return nil
	}

	return runner.runConvert(options)
}

// runConvert renders markdown from input file and writes result to stdout or file.
func (runner *cliRunner) runConvert(options *cliOptions) error {
	logger, err := newLogger(runner.stderr, options.LogLevel)
	if err != nil {
		return err
	}

	renderOptions := apimd.Options{
		Logger:     &logger,
		Format:     apimd.InputFormat(options.Format),
		SourcePath: options.InputPath,
		Policy:     apimd.FailurePolicyAbort,
		Workers:    options.Workers,
	}

	if options.SkipInvalid {
		renderOptions.Policy = apimd.FailurePolicySkip
	}

	if options.TemplatePath != "" {
		customTemplate, err := os.ReadFile(options.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", options.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := apimd.RenderFile(options.InputPath, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	return runner.writeOutput(options.OutputPath, rendered, "markdown")
}

// runPrintTemplate writes built-in template to stdout.
func (runner *cliRunner) runPrintTemplate() error {
	tpl, err := apimd.BuiltinTemplate()
	if err != nil {
		return fmt.Errorf("load built-in template: %w", err)
	}

	return runner.writeOutput("", tpl, "template")
}

// writeOutput writes content to stdout when path is empty, otherwise to file.
func (runner *cliRunner) writeOutput(path, content, kind string) error {
	if strings.TrimSpace(path) == "" {
		if _, err := io.WriteString(runner.stdout, content); err != nil {
			return fmt.Errorf("write %s to stdout: %w", kind, err)
		}

		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", kind, path, err)
	}

	return nil
}

// newLogger builds console diagnostics logger on the selected stream.
func newLogger(output io.Writer, level string) (zerolog.Logger, error) {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}

	writer := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	return zerolog.New(writer).
		Level(parsedLevel).
		With().
		Timestamp().
		Logger(), nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, runner.programName, Version, Commit, BuildTime)
}
