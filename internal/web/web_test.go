package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesReferenceNoUnservedAssets(t *testing.T) {
	entries, err := templateFS.ReadDir("templates")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		b, err := templateFS.ReadFile("templates/" + e.Name())
		require.NoError(t, err)
		// No /static route is registered, so nothing may link into it.
		assert.NotContains(t, string(b), "/static/", e.Name())
	}
}
