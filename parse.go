// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// FailurePolicyAbort stops the whole run on the first invalid element.
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicySkip drops invalid elements, logging one warning per element.
	FailurePolicySkip FailurePolicy = "skip"
)

// FailurePolicy configures how invalid array elements are handled.
type FailurePolicy string

// Endpoint object keys.
const (
	keyName           = "name"
	keyDescription    = "description"
	keyPermissions    = "permissions"
	keyRequestMethod  = "request_method"
	keyRequestURL     = "request_url"
	keyRequestHeaders = "request_headers"
	keyRequestBody    = "request_body"
	keyResponse       = "response"
	keyResponseBody   = "response_body"
)

// elementField is reported when an array element is not a JSON object at all.
const elementField = "(element)"

// jsonKind is the JSON type of one raw value.
type jsonKind int

const (
	kindInvalid jsonKind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// ParseOptions configures endpoint array parsing.
type ParseOptions struct {
	// Logger receives one warning per skipped element; nil disables logging.
	Logger *zerolog.Logger
	// Policy selects abort or skip behavior for invalid elements; empty means abort.
	Policy FailurePolicy
	// Workers enables concurrent element parsing when greater than one.
	Workers int
}

// ParseResult is the outcome of parsing one endpoint array.
type ParseResult struct {
	// Endpoints keep input array order.
	Endpoints []Endpoint
	// Skipped lists elements dropped by FailurePolicySkip, in input order.
	Skipped []*ElementError
}

// objectMember is one key/value member of a JSON object in document order.
type objectMember struct {
	Key   string
	Value json.RawMessage
}

// parsedElement is one parse outcome kept at its input index.
type parsedElement struct {
	err      error
	endpoint Endpoint
}

// ParseEndpoints decodes a JSON array and parses each element into an Endpoint.
func ParseEndpoints(data []byte, opt ParseOptions) (ParseResult, error) {
	policy, err := normalizeFailurePolicy(opt.Policy)
	if err != nil {
		return ParseResult{}, err
	}

	elements, err := decodeElements(data)
	if err != nil {
		return ParseResult{}, err
	}

	parsed, err := parseElements(elements, opt.Workers)
	if err != nil {
		return ParseResult{}, err
	}

	logger := loggerOrNop(opt.Logger)
	result := ParseResult{Endpoints: make([]Endpoint, 0, len(parsed))}
	for index, item := range parsed {
		if item.err == nil {
			result.Endpoints = append(result.Endpoints, item.endpoint)
			continue
		}

		var elementErr *ElementError
		if !errors.As(item.err, &elementErr) {
			return ParseResult{}, item.err
		}

		elementErr.Index = index
		if policy == FailurePolicyAbort {
			return ParseResult{}, elementErr
		}

		logger.Warn().
			Int("index", index).
			Str("field", elementErr.Field).
			Err(elementErr.Err).
			Msg("skip invalid endpoint")
		result.Skipped = append(result.Skipped, elementErr)
	}

	logger.Debug().
		Int("parsed", len(result.Endpoints)).
		Int("skipped", len(result.Skipped)).
		Msg("endpoints parsed")

	return result, nil
}

// ParseEndpoint converts one raw JSON object into an Endpoint.
// The returned error is always *ElementError with Index set to -1.
func ParseEndpoint(raw json.RawMessage) (Endpoint, error) {
	members, ok, err := decodeObjectMembers(raw)
	if err != nil || !ok {
		return Endpoint{}, &ElementError{Index: -1, Field: elementField, Err: ErrFieldType}
	}

	fields := make(map[string]json.RawMessage, len(members))
	for _, member := range members {
		fields[member.Key] = member.Value
	}

	var endpoint Endpoint
	if endpoint.Name, err = requiredString(fields, keyName); err != nil {
		return Endpoint{}, err
	}

	if endpoint.RequestMethod, err = requiredString(fields, keyRequestMethod); err != nil {
		return Endpoint{}, err
	}

	if endpoint.RequestURL, err = requiredString(fields, keyRequestURL); err != nil {
		return Endpoint{}, err
	}

	endpoint.Description = optionalString(fields[keyDescription])
	endpoint.Permissions = parsePermissions(fields[keyPermissions])

	if endpoint.RequestHeaders, err = parseStringMapping(fields[keyRequestHeaders], keyRequestHeaders); err != nil {
		return Endpoint{}, err
	}

	if endpoint.Response, err = parseStringMapping(fields[keyResponse], keyResponse); err != nil {
		return Endpoint{}, err
	}

	endpoint.RequestBody = presentValue(fields[keyRequestBody])
	endpoint.ResponseBody = presentValue(fields[keyResponseBody])

	return endpoint, nil
}

// parseElements parses all elements, concurrently when workers > 1, keeping input order.
func parseElements(elements []json.RawMessage, workers int) ([]parsedElement, error) {
	parsed := make([]parsedElement, len(elements))
	if workers <= 1 || len(elements) < 2 {
		for index, raw := range elements {
			endpoint, err := ParseEndpoint(raw)
			parsed[index] = parsedElement{endpoint: endpoint, err: err}
		}

		return parsed, nil
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for index, raw := range elements {
		group.Go(func() error {
			endpoint, err := ParseEndpoint(raw)
			parsed[index] = parsedElement{endpoint: endpoint, err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return parsed, nil
}

// decodeElements decodes top-level JSON array into raw element values.
func decodeElements(data []byte) ([]json.RawMessage, error) {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}

	if rawKind(root) != kindArray {
		return nil, ErrInputNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(root, &elements); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}

	return elements, nil
}

// decodeObjectMembers returns object members in document order.
// The second result is false when raw is not a JSON object.
func decodeObjectMembers(raw json.RawMessage) ([]objectMember, bool, error) {
	if rawKind(raw) != kindObject {
		return nil, false, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	if _, err := decoder.Token(); err != nil {
		return nil, false, err
	}

	members := make([]objectMember, 0, 8)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, false, err
		}

		key, ok := token.(string)
		if !ok {
			return nil, false, fmt.Errorf("object key %v is not a string", token)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, false, err
		}

		members = append(members, objectMember{Key: key, Value: value})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, false, err
	}

	return members, true, nil
}

// requiredString reads one mandatory string field.
func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || rawKind(raw) == kindNull {
		return "", &ElementError{Index: -1, Field: key, Err: ErrMissingField}
	}

	value, ok := decodeString(raw)
	if !ok {
		return "", &ElementError{Index: -1, Field: key, Err: ErrFieldType}
	}

	return value, nil
}

// optionalString reads a string field; absent, empty and non-string values yield "".
func optionalString(raw json.RawMessage) string {
	value, _ := decodeString(raw)
	return value
}

// parsePermissions keeps string array items and drops everything else.
func parsePermissions(raw json.RawMessage) Optional[[]string] {
	if rawKind(raw) != kindArray {
		return None[[]string]()
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return None[[]string]()
	}

	permissions := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := decodeString(item); ok {
			permissions = append(permissions, value)
		}
	}

	return Some(permissions)
}

// parseStringMapping reads an object whose values must all be strings.
func parseStringMapping(raw json.RawMessage, key string) (Optional[Pairs], error) {
	members, ok, err := decodeObjectMembers(raw)
	if err != nil {
		return None[Pairs](), &ElementError{Index: -1, Field: key, Err: ErrFieldType}
	}

	if !ok {
		return None[Pairs](), nil
	}

	pairs := make(Pairs, 0, len(members))
	for _, member := range members {
		value, ok := decodeString(member.Value)
		if !ok {
			return None[Pairs](), &ElementError{Index: -1, Field: key + "." + member.Key, Err: ErrFieldType}
		}

		pairs = pairs.Set(member.Key, value)
	}

	return Some(pairs), nil
}

// presentValue returns a trimmed copy of raw unless it is missing or JSON null.
func presentValue(raw json.RawMessage) json.RawMessage {
	switch rawKind(raw) {
	case kindInvalid, kindNull:
		return nil
	}

	return json.RawMessage(bytes.Clone(bytes.TrimSpace(raw)))
}

// decodeString decodes raw JSON string value.
func decodeString(raw json.RawMessage) (string, bool) {
	if rawKind(raw) != kindString {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	return value, true
}

// rawKind detects JSON value type from its first significant byte.
func rawKind(raw []byte) jsonKind {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return kindInvalid
	}

	switch trimmed[0] {
	case 'n':
		return kindNull
	case 't', 'f':
		return kindBool
	case '"':
		return kindString
	case '[':
		return kindArray
	case '{':
		return kindObject
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return kindNumber
	default:
		return kindInvalid
	}
}

// normalizeFailurePolicy validates failure policy and falls back to abort.
func normalizeFailurePolicy(policy FailurePolicy) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(string(policy)))) {
	case "", FailurePolicyAbort:
		return FailurePolicyAbort, nil
	case FailurePolicySkip:
		return FailurePolicySkip, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFailurePolicy, policy)
	}
}

// loggerOrNop returns logger or a disabled logger when nil.
func loggerOrNop(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}

	nop := zerolog.Nop()
	return &nop
}
