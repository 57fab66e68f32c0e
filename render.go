// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configures full input-to-markdown conversion.
type Options struct {
	// Logger receives parse diagnostics; nil disables logging.
	Logger *zerolog.Logger
	// Format selects input decoding; empty means InputFormatAuto.
	Format InputFormat
	// SourcePath is used by InputFormatAuto to pick decoder by extension.
	SourcePath string
	// Policy selects how invalid endpoint elements are handled.
	Policy FailurePolicy
	// TemplateText replaces built-in layout with a custom text/template.
	TemplateText string
	// Workers enables concurrent parse and render when greater than one.
	Workers int
}

// RenderOptions configures endpoint list rendering.
type RenderOptions struct {
	// TemplateText replaces built-in layout with a custom text/template.
	TemplateText string
	// Workers enables concurrent fragment rendering when greater than one.
	Workers int
}

// RenderFile reads endpoints from file and renders markdown documentation.
func RenderFile(path string, opt Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInputFile, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Render(data, opt)
}

// Render converts endpoint array bytes into markdown document.
func Render(data []byte, opt Options) (string, error) {
	jsonData, err := decodeInput(data, opt.Format, opt.SourcePath)
	if err != nil {
		return "", err
	}

	parsed, err := ParseEndpoints(jsonData, ParseOptions{
		Logger:  opt.Logger,
		Policy:  opt.Policy,
		Workers: opt.Workers,
	})
	if err != nil {
		return "", err
	}

	return RenderEndpoints(parsed.Endpoints, RenderOptions{
		TemplateText: opt.TemplateText,
		Workers:      opt.Workers,
	})
}

// RenderEndpoints renders table of contents followed by every endpoint fragment.
func RenderEndpoints(endpoints []Endpoint, opt RenderOptions) (string, error) {
	if strings.TrimSpace(opt.TemplateText) != "" {
		return renderTemplate(opt.TemplateText, endpoints)
	}

	fragments, err := renderFragments(endpoints, opt.Workers)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(RenderTableOfContents(endpoints))
	out.WriteString(sectionSeparator)
	for _, fragment := range fragments {
		out.WriteString(fragment)
	}

	return out.String(), nil
}

// renderFragments renders endpoint fragments, concurrently when workers > 1, keeping input order.
func renderFragments(endpoints []Endpoint, workers int) ([]string, error) {
	fragments := make([]string, len(endpoints))
	if workers <= 1 || len(endpoints) < 2 {
		for index, endpoint := range endpoints {
			fragment, err := RenderEndpoint(endpoint)
			if err != nil {
				return nil, err
			}

			fragments[index] = fragment
		}

		return fragments, nil
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for index, endpoint := range endpoints {
		group.Go(func() error {
			fragment, err := RenderEndpoint(endpoint)
			if err != nil {
				return err
			}

			fragments[index] = fragment
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return fragments, nil
}
