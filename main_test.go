package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromArgs(t *testing.T) {
	t.Run("uses the positional port", func(t *testing.T) {
		var out bytes.Buffer
		port, err := portFromArgs([]string{"isogit", "9090"}, 8080, &out)
		require.NoError(t, err)
		assert.Equal(t, 9090, port)
		assert.Empty(t, out.String())
	})

	t.Run("prints usage and falls back without an argument", func(t *testing.T) {
		var out bytes.Buffer
		port, err := portFromArgs([]string{"isogit"}, 8080, &out)
		require.NoError(t, err)
		assert.Equal(t, 8080, port)
		assert.Equal(t, "Usage: isogit <port>\n", out.String())
	})

	t.Run("rejects a malformed port", func(t *testing.T) {
		var out bytes.Buffer
		_, err := portFromArgs([]string{"isogit", "http"}, 8080, &out)
		assert.Error(t, err)
	})
}
