// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import "encoding/json"

// Endpoint is one documented HTTP API operation parsed from one input array element.
type Endpoint struct {
	// Name is used verbatim as section heading and anchor source.
	Name string
	// Description is optional; empty string means absent.
	Description string
	// Permissions keeps string permissions in input order.
	Permissions Optional[[]string]

	// RequestMethod is emitted as-is, it is not checked against known verbs.
	RequestMethod string
	// RequestURL is emitted as-is, it is not validated.
	RequestURL string
	// RequestHeaders maps header names to values in first-seen order.
	RequestHeaders Optional[Pairs]
	// RequestBody is raw JSON; nil means absent.
	RequestBody json.RawMessage

	// Response maps status codes to descriptions in first-seen order.
	Response Optional[Pairs]
	// ResponseBody is raw JSON; nil means absent.
	ResponseBody json.RawMessage
}

// Optional distinguishes an omitted field from a field present with zero value.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

// None returns an absent optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns held value and presence flag.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Pair is one string key/value entry of an ordered mapping.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered string mapping preserving first-seen key order.
type Pairs []Pair

// Set stores value under key; existing keys keep their position.
func (p Pairs) Set(key, value string) Pairs {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}

	return append(p, Pair{Key: key, Value: value})
}

// Lookup returns value stored under key.
func (p Pairs) Lookup(key string) (string, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Keys returns keys in stored order.
func (p Pairs) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, pair := range p {
		keys = append(keys, pair.Key)
	}

	return keys
}
