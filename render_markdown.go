// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// codeFence opens and closes fenced code blocks.
	codeFence = "```"
	// hardLineBreak is the CommonMark trailing double-space line break.
	hardLineBreak = "  "
	// bodyIndent is used for pretty-printed JSON bodies.
	bodyIndent = "  "
	// sectionSeparator follows the table of contents and every endpoint fragment.
	sectionSeparator = "\n\n"
)

// Section headings of one endpoint fragment.
const (
	headingPermissions    = "## Permissions"
	headingHTTPRequest    = "## HTTP request"
	headingRequestHeaders = "## Request headers"
	headingRequestBody    = "## Request body"
	headingResponse       = "## Response"
	headingResponseBody   = "## Response body"
)

// Anchor converts endpoint name into a table of contents link target.
// Only case and spaces are normalized, so distinct names may collide.
func Anchor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// RenderTableOfContents renders one list item per endpoint, in input order.
func RenderTableOfContents(endpoints []Endpoint) string {
	var out strings.Builder
	for _, endpoint := range endpoints {
		writeTableOfContentsItem(&out, endpoint.Name)
	}

	return out.String()
}

// RenderEndpoint renders one endpoint fragment including trailing separator.
func RenderEndpoint(endpoint Endpoint) (string, error) {
	var out strings.Builder

	writeHeader(&out, endpoint)

	if permissions, ok := endpoint.Permissions.Get(); ok {
		writePermissions(&out, permissions)
	}

	writeRequest(&out, endpoint.RequestMethod, endpoint.RequestURL)

	if headers, ok := endpoint.RequestHeaders.Get(); ok {
		writeRequestHeaders(&out, headers)
	}

	if endpoint.RequestBody != nil {
		if err := writeBody(&out, headingRequestBody, endpoint.RequestBody); err != nil {
			return "", fmt.Errorf("%w: endpoint %q request body: %w", ErrFormatBody, endpoint.Name, err)
		}
	}

	if responses, ok := endpoint.Response.Get(); ok {
		writeResponse(&out, responses)
	}

	if endpoint.ResponseBody != nil {
		if err := writeBody(&out, headingResponseBody, endpoint.ResponseBody); err != nil {
			return "", fmt.Errorf("%w: endpoint %q response body: %w", ErrFormatBody, endpoint.Name, err)
		}
	}

	out.WriteString(sectionSeparator)
	return out.String(), nil
}

// FormatBody pretty-prints raw JSON with stable two-space indentation.
// Key order and number literals are kept as written in the input.
func FormatBody(raw json.RawMessage) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(raw), "", bodyIndent); err != nil {
		return "", err
	}

	return out.String(), nil
}

func writeTableOfContentsItem(out *strings.Builder, name string) {
	fmt.Fprintf(out, "* [%s](#%s)\n", name, Anchor(name))
}

func writeHeader(out *strings.Builder, endpoint Endpoint) {
	out.WriteString("# ")
	out.WriteString(endpoint.Name)
	out.WriteString("\n")

	if endpoint.Description != "" {
		out.WriteString(endpoint.Description)
		out.WriteString(hardLineBreak + "\n")
	}

	out.WriteString("\n")
}

func writePermissions(out *strings.Builder, permissions []string) {
	out.WriteString(headingPermissions + "\n")
	for _, permission := range permissions {
		out.WriteString("* ")
		out.WriteString(permission)
		out.WriteString("\n")
	}

	out.WriteString("\n")
}

func writeRequest(out *strings.Builder, method, url string) {
	out.WriteString(headingHTTPRequest + "\n")
	out.WriteString(codeFence + "\n")
	out.WriteString(method + " " + url + "\n")
	out.WriteString(codeFence + "\n\n")
}

func writeRequestHeaders(out *strings.Builder, headers Pairs) {
	out.WriteString(headingRequestHeaders + "\n")
	out.WriteString("|Name|Value|\n")
	out.WriteString("|-|-|\n")
	for _, header := range headers {
		out.WriteString("|" + header.Key + "|" + header.Value + "|\n")
	}

	out.WriteString("\n")
}

func writeResponse(out *strings.Builder, responses Pairs) {
	out.WriteString(headingResponse + "\n")
	for _, response := range responses {
		out.WriteString("`" + response.Key + "` " + response.Value + hardLineBreak + "\n")
	}

	out.WriteString("\n")
}

// writeBody writes a fenced pretty JSON block under heading.
func writeBody(out *strings.Builder, heading string, raw json.RawMessage) error {
	body, err := FormatBody(raw)
	if err != nil {
		return err
	}

	out.WriteString(heading + "\n")
	out.WriteString(codeFence + "\n")
	out.WriteString(body)
	out.WriteString("\n" + codeFence + "\n\n")
	return nil
}
