package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	headers := []string{"METHOD", "PATH", "TAGS"}
	rows := [][]string{
		{"GET", "/users", "users"},
		{"DELETE", "/users/{id}", "users,admin"},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, rows, false)
		want := "METHOD  PATH         TAGS\n" +
			"GET     /users       users\n" +
			"DELETE  /users/{id}  users,admin\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, rows, true)
		assert.Equal(t, "GET\t/users\tusers\nDELETE\t/users/{id}\tusers,admin\n", buf.String())
	})

	t.Run("no rows", func(t *testing.T) {
		var buf bytes.Buffer
		RenderTable(&buf, headers, nil, false)
		assert.Empty(t, buf.String())
	})
}
