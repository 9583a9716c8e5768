package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfilter/internal/testutil"
	"github.com/erraggy/oasfilter/oaserrors"
)

func TestSetupRefsFlags(t *testing.T) {
	fs, flags := SetupRefsFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.Strict)
		assert.Empty(t, flags.Selection.Profile)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "yaml", "--strict", "--profile", "users.yaml", "--log-level", "debug", "api.json"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, FormatYAML, flags.Format)
		assert.True(t, flags.Strict)
		assert.Equal(t, "users.yaml", flags.Selection.Profile)
		assert.Equal(t, "debug", flags.Log.Level)
		assert.Equal(t, "api.json", fs.Arg(0))
	})
}

func TestHandleRefs_NoArgs(t *testing.T) {
	captureIO(t, "")
	err := HandleRefs([]string{"--select", "all"})
	assert.Error(t, err)
}

func TestHandleRefs_Help(t *testing.T) {
	err := HandleRefs([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleRefs_NoSelection(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	out, _ := captureIO(t, "")

	err := HandleRefs([]string{path})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.ErrorContains(t, err, "no endpoints selected")
	assert.Empty(t, out.String())
}

func TestHandleRefs_Text(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	out, _ := captureIO(t, "")

	require.NoError(t, HandleRefs([]string{"--select", "GET /users", path}))

	want := "Endpoints (1):\n" +
		"  GET /users\n" +
		"\n" +
		"Components (1):\n" +
		"  schemas: User\n"
	assert.Equal(t, want, out.String())
}

func TestHandleRefs_Unresolved(t *testing.T) {
	path := testutil.WriteTempFile(t, "cycles.json", testutil.CyclicAPI)

	t.Run("reported", func(t *testing.T) {
		out, errOut := captureIO(t, "")
		require.NoError(t, HandleRefs([]string{"--select", "GET /dangling", "--select", "GET /a", path}))

		assert.Contains(t, out.String(), "schemas: A, B\n")
		assert.Contains(t, out.String(), "Unresolved (1):\n  #/components/schemas/Missing at $.paths['/dangling'].get")
		assert.Contains(t, errOut.String(), "unresolved reference")
	})

	t.Run("strict", func(t *testing.T) {
		out, _ := captureIO(t, "")
		err := HandleRefs([]string{"--strict", "--select", "GET /dangling", path})
		assert.ErrorIs(t, err, oaserrors.ErrReference)
		assert.Empty(t, out.String())
	})
}

func TestHandleRefs_JSON(t *testing.T) {
	path := testutil.WriteTempFile(t, "api.json", testutil.UsersAPI)
	out, _ := captureIO(t, "")

	require.NoError(t, HandleRefs([]string{"--format", "json", "--select", "GET /invoices", path}))

	var got struct {
		Endpoints  []string            `json:"endpoints"`
		Components map[string][]string `json:"components"`
	}
	decodeJSON(t, out.Bytes(), &got)
	assert.Equal(t, []string{"GET /invoices"}, got.Endpoints)
	assert.Equal(t, []string{"Invoice", "Money", "User", "Address"}, got.Components["schemas"])
}

func TestHandleRefs_YAML(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	out, _ := captureIO(t, "")

	require.NoError(t, HandleRefs([]string{"--format", "yaml", "--select", "op:createUser", path}))
	assert.True(t, strings.HasPrefix(out.String(), "endpoints:\n"))

	var got struct {
		Endpoints  []string            `yaml:"endpoints"`
		Components map[string][]string `yaml:"components"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"POST /users"}, got.Endpoints)
	assert.Equal(t, map[string][]string{"schemas": {"NewUser"}}, got.Components)
}
