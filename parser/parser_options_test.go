package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erraggy/oasfilter/internal/testutil"
	"github.com/erraggy/oasfilter/oaserrors"
)

func TestParseWithOptions_InputSources(t *testing.T) {
	path := testutil.WriteTempFile(t, "api.json", testutil.ScenarioAPI)

	tests := []struct {
		name     string
		opts     []Option
		wantPath string
	}{
		{"file", []Option{WithFilePath(path)}, path},
		{"reader", []Option{WithReader(strings.NewReader(testutil.ScenarioAPI))}, "ParseReader.json"},
		{"bytes", []Option{WithBytes([]byte(testutil.ScenarioAPI))}, "ParseBytes.json"},
		{"source name", []Option{WithBytes([]byte(testutil.ScenarioAPI)), WithSourceName("users.json")}, "users.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseWithOptions(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, result.SourcePath)
			assert.Equal(t, "3.0.3", result.Version)
		})
	}
}

func TestParseWithOptions_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
	}{
		{"no source", nil, "no input source: use one of WithFilePath, WithReader, WithBytes"},
		{"two sources", []Option{WithBytes([]byte("{}")), WithReader(strings.NewReader("{}"))}, "multiple input sources (WithReader, WithBytes)"},
		{"nil reader", []Option{WithReader(nil)}, "reader cannot be nil"},
		{"nil bytes", []Option{WithBytes(nil)}, "bytes cannot be nil"},
		{"empty path", []Option{WithFilePath("")}, "path cannot be empty"},
		{"negative size", []Option{WithBytes([]byte("{}")), WithMaxFileSize(-1)}, "must not be negative"},
		{"negative depth", []Option{WithBytes([]byte("{}")), WithMaxDepth(-1)}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, strings.HasPrefix(err.Error(), "parser: invalid options: "))
		})
	}
}

func TestParseWithOptions_Limits(t *testing.T) {
	_, err := ParseWithOptions(WithBytes([]byte(testutil.UsersAPI)), WithMaxFileSize(10))
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

	_, err = ParseWithOptions(WithBytes([]byte(testutil.UsersAPI)), WithMaxDepth(2))
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
}

func TestParseWithOptions_ValidateStructure(t *testing.T) {
	_, err := ParseWithOptions(WithBytes([]byte(`{"paths": {}}`)))
	assert.True(t, errors.Is(err, oaserrors.ErrMalformed))

	result, err := ParseWithOptions(WithBytes([]byte(`{"paths": {}}`)), WithValidateStructure(false))
	require.NoError(t, err)
	assert.Empty(t, result.VersionKey)
}

func TestParseWithOptions_Logger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := ParseWithOptions(
		WithBytes([]byte(testutil.ScenarioAPI)),
		WithLogger(NewZapAdapter(zap.New(core))),
	)
	require.NoError(t, err)

	entries := logs.FilterMessage("parsed document").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ParseBytes.json", fields["source"])
	assert.Equal(t, "json", fields["format"])
	assert.Equal(t, int64(2), fields["operations"])
}
