package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mission-control/models"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func clientArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	dir := t.TempDir()
	return append(extra,
		"--cache-dsn", ":memory:",
		"--log-file", filepath.Join(dir, "logs"),
	)
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		kind    models.Kind
		in      string
		want    models.Value
		wantErr bool
	}{
		{kind: models.KindBool, in: "true", want: models.Bool(true)},
		{kind: models.KindBool, in: "yes", wantErr: true},
		{kind: models.KindInt, in: "-4", want: models.Int(-4)},
		{kind: models.KindInt, in: "1.5", wantErr: true},
		{kind: models.KindDouble, in: "1.5", want: models.Double(1.5)},
		{kind: models.KindString, in: "", want: models.String("")},
		{kind: models.KindInvalid, in: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.in, func(t *testing.T) {
			got, err := parseFallback(tt.kind, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: N/A")
	assert.Contains(t, out, "Build commit: N/A")
}

func TestGetCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"TestInt":8,"TestString":"Remote"}`))
	}))
	t.Cleanup(srv.Close)

	out, _, err := runCommand(t, clientArgs(t, "get", "TestInt", "--type", "int", "-u", srv.URL)...)
	require.NoError(t, err)
	assert.Equal(t, "8", strings.TrimSpace(out))

	out, _, err = runCommand(t, clientArgs(t, "get", "Missing", "--type", "int", "--fallback", "3", "-u", srv.URL)...)
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))

	_, _, err = runCommand(t, clientArgs(t, "get", "Missing", "-u", srv.URL)...)
	assert.ErrorIs(t, err, errKeyNotFound)

	_, _, err = runCommand(t, clientArgs(t, "get", "TestInt", "--type", "array")...)
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestGetCommand_RefreshFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	out, stderr, err := runCommand(t, clientArgs(t, "get", "TestBool", "--type", "bool", "--fallback", "true", "-u", srv.URL)...)
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(out))
	assert.Contains(t, stderr, "refresh failed")
}

func TestDumpCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"a":1}`))
	}))
	t.Cleanup(srv.Close)

	out, _, err := runCommand(t, clientArgs(t, "dump", "-u", srv.URL)...)
	require.NoError(t, err)

	var snap struct {
		RemoteURL string         `json:"remote_url"`
		Config    map[string]any `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, srv.URL, snap.RemoteURL)
	assert.Equal(t, map[string]any{"a": 1.0}, snap.Config)
}
