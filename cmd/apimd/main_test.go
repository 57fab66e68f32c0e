// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEndpoints = `[
  {"name": "Ping", "request_method": "GET", "request_url": "/ping"},
  {"name": "Create item", "request_method": "POST", "request_url": "/items", "request_body": {"a": 1}}
]`

func TestRunWithoutFilePrintsUsage(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	assert.Contains(t, stdout.String(), "--file")
	assert.Contains(t, stdout.String(), "--save-to-file")
	assert.Empty(t, stderr.String())
}

func TestRunWritesMarkdownToStdout(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", validEndpoints)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	assert.True(t, strings.HasPrefix(stdout.String(), "* [Ping](#ping)\n* [Create item](#create-item)\n\n\n# Ping\n"))
	assert.Contains(t, stdout.String(), "## Request body\n```\n{\n  \"a\": 1\n}\n```\n")
}

func TestRunWritesMarkdownToOutputFile(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", validEndpoints)
	outPath := filepath.Join(t.TempDir(), "API.md")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--file", inputPath, "--save-to-file", outPath}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Zero(t, stdout.Len(), "stdout should be empty when output path is provided")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Create item\n")
}

func TestRunYAMLInput(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.yaml", "- name: Ping\n  request_method: GET\n  request_url: /ping\n")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "```\nGET /ping\n```\n")
}

func TestRunInvalidElementAbortsByDefault(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", `[{"name":"Ping","request_method":"GET"}]`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Zero(t, stdout.Len())
	assert.Contains(t, stderr.String(), `field "request_url": missing required field`)
}

func TestRunSkipInvalidLogsWarning(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", `[
		{"name":"Ping","request_method":"GET"},
		{"name":"Pong","request_method":"GET","request_url":"/pong"}
	]`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath, "--skip-invalid"}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	assert.Contains(t, stdout.String(), "# Pong\n")
	assert.NotContains(t, stdout.String(), "# Ping\n")
	assert.Contains(t, stderr.String(), "skip invalid endpoint")
}

func TestRunSkipInvalidFromEnvironment(t *testing.T) {
	t.Setenv("APIMD_SKIP_INVALID", "true")

	inputPath := writeFixture(t, "api.json", `[
		{"name":"Ping","request_method":"GET"},
		{"name":"Pong","request_method":"GET","request_url":"/pong"}
	]`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	assert.Contains(t, stdout.String(), "# Pong\n")
	assert.Contains(t, stderr.String(), "skip invalid endpoint")
}

func TestRunMissingInputFile(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "read input file")
}

func TestRunMalformedJSON(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", `{"not":"an array"}`)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "input root must be an array")
}

func TestRunUnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--unknown"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, stderr.String())
}

func TestRunInvalidFormatChoice(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", "api.json", "--format", "toml"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--help"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "--skip-invalid")
}

func TestRunPrintTemplate(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--print-template"}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "{{ range .Endpoints")
}

func TestRunWithTemplateFile(t *testing.T) {
	t.Parallel()

	inputPath := writeFixture(t, "api.json", validEndpoints)
	templatePath := writeFixture(t, "custom.gotmpl", "{{ range .Endpoints }}- {{ .Method }} {{ .URL }}\n{{ end }}")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"-f", inputPath, "--template-file", templatePath}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Equal(t, "- GET /ping\n- POST /items\n", stdout.String())
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"--version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "version:  dev")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := newLogger(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

// writeFixture writes content into a temporary file and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
