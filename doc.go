// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

/*
Package apimd renders Markdown documentation from a JSON array of HTTP API endpoints.

Each array element describes one endpoint:

	[
	  {
	    "name": "Get user",
	    "description": "Returns one user",
	    "permissions": ["users:read"],
	    "request_method": "GET",
	    "request_url": "/users/{id}",
	    "request_headers": {"Authorization": "Bearer <token>"},
	    "response": {"200": "OK", "404": "Not Found"},
	    "response_body": {"id": 1, "name": "demo"}
	  }
	]

Only name, request_method and request_url are required. Output is a table of
contents followed by one fragment per endpoint, in input order. Optional
sections are emitted only for fields present in input; an empty permissions
list, header or response object still emits its section heading. Names,
descriptions and header values are written verbatim without Markdown escaping.

Render from bytes:

	md, err := apimd.Render(data, apimd.Options{})
	if err != nil {
		return err
	}

	fmt.Print(md)

Render from file, skipping invalid elements instead of aborting:

	logger := zerolog.New(os.Stderr)
	md, err := apimd.RenderFile("api.json", apimd.Options{
		Policy: apimd.FailurePolicySkip,
		Logger: &logger,
	})
	if err != nil {
		return err
	}

YAML input with the same structure is accepted when Format is InputFormatYAML,
or in auto mode when the file has a .yaml or .yml extension.

Parse and render separately:

	parsed, err := apimd.ParseEndpoints(data, apimd.ParseOptions{})
	if err != nil {
		return err
	}

	md, err := apimd.RenderEndpoints(parsed.Endpoints, apimd.RenderOptions{})
	if err != nil {
		return err
	}

Anchors in the table of contents lower-case the name and replace spaces with
hyphens. Two endpoints with the same normalized name get the same anchor.
*/
package apimd
