// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	// must not panic
	l.Info().Str("k", "v").Msg("discarded")
}

func TestGetChildLogger_Independent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("extra", "field")
	})
	// parent is unaffected; nothing to assert beyond no panic
	parent.Info().Msg("still fine")
}

func TestFromContext_NeverNil(t *testing.T) {
	l := FromContext(context.Background())
	assert.NotNil(t, l)
}

func TestFromContext_RoundTrip(t *testing.T) {
	l := Nop()
	ctx := l.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
}

func TestFromRequest_NeverNil(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.NotNil(t, FromRequest(r))
}
