// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import "fmt"

// documentView is the root view model passed to markdown templates.
type documentView struct {
	Endpoints []endpointView
}

// endpointView represents one endpoint section in template output.
type endpointView struct {
	Name         string
	Anchor       string
	Description  string
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string

	Permissions []string
	Headers     Pairs
	Responses   Pairs

	HasPermissions  bool
	HasHeaders      bool
	HasRequestBody  bool
	HasResponses    bool
	HasResponseBody bool
}

// buildDocumentView prepares endpoint data for template rendering.
// Bodies are pretty-printed here so templates never see raw JSON.
func buildDocumentView(endpoints []Endpoint) (documentView, error) {
	view := documentView{Endpoints: make([]endpointView, 0, len(endpoints))}

	for _, endpoint := range endpoints {
		item := endpointView{
			Name:        endpoint.Name,
			Anchor:      Anchor(endpoint.Name),
			Description: endpoint.Description,
			Method:      endpoint.RequestMethod,
			URL:         endpoint.RequestURL,
		}

		item.Permissions, item.HasPermissions = endpoint.Permissions.Get()
		item.Headers, item.HasHeaders = endpoint.RequestHeaders.Get()
		item.Responses, item.HasResponses = endpoint.Response.Get()

		if endpoint.RequestBody != nil {
			body, err := FormatBody(endpoint.RequestBody)
			if err != nil {
				return documentView{}, fmt.Errorf("%w: endpoint %q request body: %w", ErrFormatBody, endpoint.Name, err)
			}

			item.RequestBody, item.HasRequestBody = body, true
		}

		if endpoint.ResponseBody != nil {
			body, err := FormatBody(endpoint.ResponseBody)
			if err != nil {
				return documentView{}, fmt.Errorf("%w: endpoint %q response body: %w", ErrFormatBody, endpoint.Name, err)
			}

			item.ResponseBody, item.HasResponseBody = body, true
		}

		view.Endpoints = append(view.Endpoints, item)
	}

	return view, nil
}
