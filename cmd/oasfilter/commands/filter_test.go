package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfilter/internal/testutil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
)

// readDoc decodes a filtered document written by the filter command.
func readDoc(t *testing.T, data []byte) *jsonvalue.Object {
	t.Helper()
	v, err := jsonvalue.DecodeYAML(data)
	require.NoError(t, err, "output: %s", data)
	obj, ok := jsonvalue.AsObject(v)
	require.True(t, ok)
	return obj
}

// schemaNames returns the component schema names of doc.
func schemaNames(t *testing.T, doc *jsonvalue.Object) []string {
	t.Helper()
	components, ok := doc.GetObject("components")
	if !ok {
		return nil
	}
	schemas, ok := components.GetObject("schemas")
	if !ok {
		return nil
	}
	return schemas.Keys()
}

// stubClipboard records clipboard writes for the duration of the test.
func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var got string
	old := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		got = text
		return err
	}
	t.Cleanup(func() { clipboardWriteAll = old })
	return &got
}

func TestSetupFilterFlags(t *testing.T) {
	fs, flags := SetupFilterFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Output)
		assert.Empty(t, flags.Format)
		assert.False(t, flags.Clipboard)
		assert.False(t, flags.Strict)
		assert.False(t, flags.Verify)
		assert.False(t, flags.Watch)
		assert.False(t, flags.Quiet)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{
			"-o", "out.yaml", "--format", "yaml", "--strict", "--verify", "--watch", "-q",
			"--select", "tag:users", "--exclude", "ext:x-internal", "--profile", "p.yaml",
			"api.json",
		}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "out.yaml", flags.Output)
		assert.Equal(t, "yaml", flags.Format)
		assert.True(t, flags.Strict)
		assert.True(t, flags.Verify)
		assert.True(t, flags.Watch)
		assert.True(t, flags.Quiet)
		assert.Equal(t, stringList{"tag:users"}, flags.Selection.Select)
		assert.Equal(t, stringList{"ext:x-internal"}, flags.Selection.Exclude)
		assert.Equal(t, "p.yaml", flags.Selection.Profile)
		assert.Equal(t, "api.json", fs.Arg(0))
	})
}

func TestHandleFilter_NoArgs(t *testing.T) {
	captureIO(t, "")
	err := HandleFilter(context.Background(), []string{"--select", "all"})
	assert.ErrorContains(t, err, "filter requires exactly one spec file argument")
}

func TestHandleFilter_Help(t *testing.T) {
	err := HandleFilter(context.Background(), []string{"--help"})
	assert.NoError(t, err)
}

func TestHandleFilter_ConfigErrors(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)

	tests := []struct {
		name   string
		args   []string
		option string
	}{
		{"no selection", []string{path}, "select"},
		{"exclude only", []string{"--exclude", "tag:users", path}, "select"},
		{"bad format", []string{"--select", "all", "--format", "xml", path}, "format"},
		{"clipboard with output", []string{"--select", "all", "--clipboard", "-o", "out.json", path}, "clipboard"},
		{"watch stdin", []string{"--select", "all", "--watch", StdinFilePath}, "watch"},
		{"bad selector", []string{"--select", "GET users", path}, "selector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureIO(t, "")
			err := HandleFilter(context.Background(), tt.args)
			var cfgErr *oaserrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
}

func TestHandleFilter_OutputFile(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	outPath := filepath.Join(t.TempDir(), "out.json")
	_, errOut := captureIO(t, "")

	require.NoError(t, HandleFilter(context.Background(), []string{"--select", "GET /users", "-o", outPath, path}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"openapi\": \"3.0.3\","))

	doc := readDoc(t, data)
	paths, ok := doc.GetObject("paths")
	require.True(t, ok)
	assert.Equal(t, []string{"/users"}, paths.Keys())
	users, _ := paths.GetObject("/users")
	assert.Equal(t, []string{"get"}, users.Keys())
	assert.Equal(t, []string{"User"}, schemaNames(t, doc))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Contains(t, errOut.String(), "Filtered "+path+": 1 of 2 endpoints, 1 components -> ")
}

func TestHandleFilter_DefaultOutputName(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	t.Chdir(t.TempDir())
	captureIO(t, "")

	require.NoError(t, HandleFilter(context.Background(), []string{"--select", "tag:users", path}))

	data, err := os.ReadFile("filtered-users.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"NewUser", "User"}, schemaNames(t, readDoc(t, data)))
}

func TestHandleFilter_FormatChangesExtension(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	t.Chdir(t.TempDir())
	captureIO(t, "")

	require.NoError(t, HandleFilter(context.Background(), []string{"--select", "GET /users", "--format", "yaml", path}))

	data, err := os.ReadFile("filtered-users.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "openapi: 3.0.3\n"))
}

func TestHandleFilter_Stdout(t *testing.T) {
	path := testutil.WriteTempFile(t, "pets.yaml", testutil.PetstoreYAML)
	out, errOut := captureIO(t, "")

	require.NoError(t, HandleFilter(context.Background(), []string{"--select", "op:showPetById", "-o", StdinFilePath, path}))

	assert.True(t, strings.HasPrefix(out.String(), "openapi: 3.0.0\n"))
	assert.ElementsMatch(t, []string{"Pet", "Error"}, schemaNames(t, readDoc(t, out.Bytes())))
	assert.Contains(t, errOut.String(), "-> stdout")
}

func TestHandleFilter_Stdin(t *testing.T) {
	out, errOut := captureIO(t, testutil.ScenarioAPI)

	require.NoError(t, HandleFilter(context.Background(), []string{"-q", "--select", "POST /users", StdinFilePath}))

	assert.Equal(t, []string{"NewUser"}, schemaNames(t, readDoc(t, out.Bytes())))
	assert.Empty(t, errOut.String())
}

func TestHandleFilter_Clipboard(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)

	t.Run("copied", func(t *testing.T) {
		got := stubClipboard(t, nil)
		out, errOut := captureIO(t, "")

		require.NoError(t, HandleFilter(context.Background(), []string{"--select", "GET /users", "--clipboard", path}))

		assert.Empty(t, out.String())
		assert.Equal(t, []string{"User"}, schemaNames(t, readDoc(t, []byte(*got))))
		assert.Contains(t, errOut.String(), "-> clipboard")
	})

	t.Run("clipboard unavailable", func(t *testing.T) {
		stubClipboard(t, errors.New("no clipboard utilities available"))
		captureIO(t, "")

		err := HandleFilter(context.Background(), []string{"--select", "GET /users", "--clipboard", path})
		assert.ErrorContains(t, err, "filter: copying to clipboard: no clipboard utilities available")
	})
}

func TestHandleFilter_Profile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte(testutil.UsersAPI), 0o600))
	outPath := filepath.Join(dir, "billing.yaml")
	profile := filepath.Join(dir, "billing-profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte("include:\n  - tag:billing\nformat: yaml\noutput: "+outPath+"\n"), 0o600))
	captureIO(t, "")

	require.NoError(t, HandleFilter(context.Background(), []string{"--profile", profile, path}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "openapi: 3.0.3\n"))
	paths, _ := readDoc(t, data).GetObject("paths")
	assert.Equal(t, []string{"/invoices"}, paths.Keys())
}

func TestHandleFilter_Verify(t *testing.T) {
	path := testutil.WriteTempFile(t, "cycles.json", testutil.CyclicAPI)
	outPath := filepath.Join(t.TempDir(), "out.json")

	t.Run("complete closure", func(t *testing.T) {
		captureIO(t, "")
		require.NoError(t, HandleFilter(context.Background(), []string{"--verify", "--select", "GET /a", "-o", outPath, path}))
		assert.FileExists(t, outPath)
	})

	t.Run("dangling reference", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "dangling.json")
		_, errOut := captureIO(t, "")

		err := HandleFilter(context.Background(), []string{"--verify", "--select", "GET /dangling", "-o", missing, path})
		assert.EqualError(t, err, "filter: verification failed: 1 unresolved references")
		assert.Contains(t, errOut.String(), "unresolved #/components/schemas/Missing at $.paths['/dangling'].get")
		assert.NoFileExists(t, missing)
	})
}

func TestHandleFilter_Strict(t *testing.T) {
	path := testutil.WriteTempFile(t, "cycles.json", testutil.CyclicAPI)
	outPath := filepath.Join(t.TempDir(), "out.json")
	captureIO(t, "")

	err := HandleFilter(context.Background(), []string{"--strict", "--select", "all", "-o", outPath, path})
	assert.ErrorIs(t, err, oaserrors.ErrReference)
	assert.NoFileExists(t, outPath)
}

func TestHandleFilter_LoadFailure(t *testing.T) {
	path := testutil.WriteTempFile(t, "broken.json", `{"openapi": "3.0.0", "paths": {`)
	t.Chdir(t.TempDir())
	captureIO(t, "")

	err := HandleFilter(context.Background(), []string{"--select", "all", path})
	assert.ErrorIs(t, err, oaserrors.ErrParse)
	assert.NoFileExists(t, "filtered-broken.json")
}

func TestHandleFilter_RefusesToOverwriteInput(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	captureIO(t, "")

	err := HandleFilter(context.Background(), []string{"--select", "all", "-o", path, path})
	assert.ErrorContains(t, err, "would overwrite input file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.ScenarioAPI, string(data))
}

func TestHandleFilter_RefusesSymlinkOutput(t *testing.T) {
	path := testutil.WriteTempFile(t, "users.json", testutil.ScenarioAPI)
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o600))
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(target, link))
	captureIO(t, "")

	err := HandleFilter(context.Background(), []string{"--select", "all", "-o", link, path})
	assert.ErrorContains(t, err, "refusing to write to symlink")
}
