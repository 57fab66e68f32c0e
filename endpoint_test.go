// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	t.Parallel()

	none := None[[]string]()
	value, ok := none.Get()
	assert.False(t, ok)
	assert.Nil(t, value)
	assert.False(t, none.IsSet())

	empty := Some([]string{})
	value, ok = empty.Get()
	assert.True(t, ok)
	assert.Empty(t, value)
	assert.True(t, empty.IsSet())

	var zero Optional[Pairs]
	assert.False(t, zero.IsSet())
}

func TestPairsSetAndLookup(t *testing.T) {
	t.Parallel()

	var pairs Pairs
	pairs = pairs.Set("b", "1")
	pairs = pairs.Set("a", "2")
	pairs = pairs.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, pairs.Keys())

	value, ok := pairs.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "3", value)

	_, ok = pairs.Lookup("missing")
	assert.False(t, ok)
}
