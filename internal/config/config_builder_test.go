package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newClientFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterCommonFlags(fs)
	RegisterClientFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a field set by an earlier source
// is not overwritten by a later one, while gaps are filled.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Remote: Remote{URL: "http://flags"}},
		&StructuredConfig{Remote: Remote{URL: "http://env", RequestTimeout: time.Second}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://flags", cfg.Remote.URL)
	assert.Equal(t, time.Second, cfg.Remote.RequestTimeout)
}

// TestBuild_RejectsNegativeTimeout verifies source-independent validation.
func TestBuild_RejectsNegativeTimeout(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Remote: Remote{RequestTimeout: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidRemoteConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("REMOTE_URL", "http://env.example/config")
	t.Setenv("STORAGE_DB_DSN", "env.db")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://env.example/config", b.configs[0].Remote.URL)
	assert.Equal(t, "env.db", b.configs[0].Storage.DB.DSN)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_NilFlagSet verifies that a nil flag set is ignored.
func TestWithFlags_NilFlagSet(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Empty(t, b.configs)
}

// TestWithFlags_ReadsFlags verifies that parsed flags are appended.
func TestWithFlags_ReadsFlags(t *testing.T) {
	fs := newClientFlagSet(t, "--url", "http://flags.example/config", "--refresh-interval", "1m")

	b := newConfigBuilder().withFlags(fs)
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://flags.example/config", b.configs[0].Remote.URL)
	assert.Equal(t, time.Minute, b.configs[0].Workers.RefreshInterval)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Remote.URL = "http://json.example/config"
	payload.Storage.DB.DSN = "json.db"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "http://json.example/config", b.configs[1].Remote.URL)
	assert.Equal(t, "json.db", b.configs[1].Storage.DB.DSN)
}

// TestWithJSON_UsesFirstPath verifies that the highest-priority source
// naming a JSON file decides which file is read.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.LogLevel = "warn"
	second := StructuredJSONConfig{}
	second.App.LogLevel = "error"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "warn", b.configs[2].App.LogLevel)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

// TestGetClientConfig_Priority verifies flags > env > JSON > defaults.
func TestGetClientConfig_Priority(t *testing.T) {
	clearEnvVars(t)
	payload := StructuredJSONConfig{}
	payload.Remote.URL = "http://json.example/config"
	payload.Remote.RequestTimeout = Duration(3 * time.Second)
	payload.Storage.DB.DSN = "json.db"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("CONFIG", path)
	t.Setenv("STORAGE_DB_DSN", "env.db")
	fs := newClientFlagSet(t, "--url", "http://flags.example/config")

	cfg, err := GetClientConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "http://flags.example/config", cfg.RemoteURL)
	assert.Equal(t, "env.db", cfg.CacheDSN)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

// TestGetClientConfig_InvalidURL verifies remote URL validation.
func TestGetClientConfig_InvalidURL(t *testing.T) {
	clearEnvVars(t)
	fs := newClientFlagSet(t, "--url", "ftp://example.com/config")

	_, err := GetClientConfig(fs)
	assert.ErrorIs(t, err, ErrInvalidRemoteConfigs)
}

// TestGetClientConfig_NoURL verifies that a missing URL is allowed.
func TestGetClientConfig_NoURL(t *testing.T) {
	clearEnvVars(t)
	cfg, err := GetClientConfig(newClientFlagSet(t))
	require.NoError(t, err)
	assert.Empty(t, cfg.RemoteURL)
	assert.Equal(t, "missioncontrol-cache.db", cfg.CacheDSN)
}

// ── GetServerConfig ───────────────────────────────────────────────────────────

// TestGetServerConfig_RequiresFile verifies that the served document is
// mandatory.
func TestGetServerConfig_RequiresFile(t *testing.T) {
	clearEnvVars(t)
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	RegisterCommonFlags(fs)
	RegisterServerFlags(fs)
	require.NoError(t, fs.Parse(nil))

	_, err := GetServerConfig(fs)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

// TestGetServerConfig_FromFlags verifies the server view.
func TestGetServerConfig_FromFlags(t *testing.T) {
	clearEnvVars(t)
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	RegisterCommonFlags(fs)
	RegisterServerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-a", "127.0.0.1:9000", "-f", "doc.json"}))

	cfg, err := GetServerConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddress)
	assert.Equal(t, "doc.json", cfg.ConfigFile)
}
