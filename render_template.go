// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// templateFS stores built-in markdown template embedded into the package.
//
//go:embed templates/*.md.gotmpl
var templateFS embed.FS

// builtinTemplatePath is the embedded template mirroring the built-in layout.
const builtinTemplatePath = "templates/default.md.gotmpl"

// BuiltinTemplate returns template text mirroring the built-in layout,
// meant as a starting point for custom templates.
func BuiltinTemplate() (string, error) {
	data, err := templateFS.ReadFile(builtinTemplatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}

// renderTemplate executes custom template text over endpoint view model.
func renderTemplate(templateText string, endpoints []Endpoint) (string, error) {
	parsed, err := template.New("custom").Funcs(templateFuncs()).Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	view, err := buildDocumentView(endpoints)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := parsed.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteTemplate, err)
	}

	return out.String(), nil
}

// templateFuncs provides utility functions available inside markdown templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"anchor": Anchor,
		"code": func(value string) string {
			return "`" + value + "`"
		},
	}
}
