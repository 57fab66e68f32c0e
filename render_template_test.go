// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"errors"
	"testing"
)

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	templateText := `{{ range .Endpoints }}{{ .Method }} {{ .URL }} -> {{ anchor .Name }}{{ if .HasResponses }}{{ range .Responses }} {{ code .Key }}{{ end }}{{ end }}
{{ end }}`

	rendered, err := RenderEndpoints(mustParse(t, `[
		{"name":"Get User","request_method":"GET","request_url":"/u","response":{"200":"OK","404":"Missing"}},
		{"name":"Ping","request_method":"HEAD","request_url":"/p"}
	]`), RenderOptions{TemplateText: templateText})
	if err != nil {
		t.Fatalf("RenderEndpoints: %v", err)
	}

	want := "GET /u -> get-user `200` `404`\nHEAD /p -> ping\n"
	if rendered != want {
		t.Fatalf("template output = %q, want %q", rendered, want)
	}
}

func TestRenderCustomTemplateReceivesFormattedBodies(t *testing.T) {
	t.Parallel()

	rendered, err := RenderEndpoints(mustParse(t, `[
		{"name":"a","request_method":"POST","request_url":"/","request_body":{"k":[1]},"permissions":[]}
	]`), RenderOptions{TemplateText: `{{ range .Endpoints }}{{ .HasPermissions }}|{{ .HasRequestBody }}|{{ .HasResponseBody }}
{{ .RequestBody }}{{ end }}`})
	if err != nil {
		t.Fatalf("RenderEndpoints: %v", err)
	}

	want := "true|true|false\n{\n  \"k\": [\n    1\n  ]\n}"
	if rendered != want {
		t.Fatalf("template output = %q, want %q", rendered, want)
	}
}

func TestRenderCustomTemplateErrors(t *testing.T) {
	t.Parallel()

	endpoints := mustParse(t, `[{"name":"a","request_method":"GET","request_url":"/"}]`)

	_, err := RenderEndpoints(endpoints, RenderOptions{TemplateText: "{{ range }"})
	if !errors.Is(err, ErrParseTemplate) {
		t.Fatalf("expected ErrParseTemplate, got %v", err)
	}

	_, err = RenderEndpoints(endpoints, RenderOptions{TemplateText: "{{ .Missing }}"})
	if !errors.Is(err, ErrExecuteTemplate) {
		t.Fatalf("expected ErrExecuteTemplate, got %v", err)
	}
}

func TestBuiltinTemplateMatchesFixedLayout(t *testing.T) {
	t.Parallel()

	tpl, err := BuiltinTemplate()
	if err != nil {
		t.Fatalf("BuiltinTemplate: %v", err)
	}

	cases := map[string]string{
		"all sections": jsonEndpoints,
		"required only": `[
			{"name":"Ping","request_method":"GET","request_url":"/ping"},
			{"name":"Empty Sections","description":"","permissions":[],"request_method":"PUT","request_url":"/e","request_headers":{},"response":{}}
		]`,
		"empty array": `[]`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			endpoints := mustParse(t, input)

			want, err := RenderEndpoints(endpoints, RenderOptions{})
			if err != nil {
				t.Fatalf("RenderEndpoints: %v", err)
			}

			got, err := RenderEndpoints(endpoints, RenderOptions{TemplateText: tpl})
			if err != nil {
				t.Fatalf("RenderEndpoints with built-in template: %v", err)
			}

			if got != want {
				t.Fatalf("built-in template output differs from fixed layout\ngot:  %q\nwant: %q", got, want)
			}
		})
	}
}

// mustParse parses JSON endpoint array with default options.
func mustParse(t *testing.T, input string) []Endpoint {
	t.Helper()

	parsed, err := ParseEndpoints([]byte(input), ParseOptions{})
	if err != nil {
		t.Fatalf("ParseEndpoints: %v", err)
	}

	return parsed.Endpoints
}
