package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/mxmlextrema/mxmlcaot/common"
	"github.com/mxmlextrema/mxmlcaot/semantics"
)

func TestMissingConfigurationYieldsDefaults(t *testing.T) {
	dir := t.TempDir()

	options, err := LoadOptions(dir)
	require.NoError(t, err)

	expected := semantics.DefaultDatabaseOptions()
	expected.ProjectPath = dir
	if diff := cmp.Diff(expected, options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptions(t *testing.T) {
	buff := []byte(`
project-path = "app"
as3-namespace = "http://example.com/as3"
utils-package = ["com", "example", "utils"]

[config-constants]
"CONFIG::debug" = true
"CONFIG::release" = "false"
`)

	options, err := ParseOptions(buff, "/work")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/work", "app"), options.ProjectPath)
	assert.Equal(t, "http://example.com/as3", options.AS3NamespaceURI)
	assert.Equal(t, common.DefaultProxyNamespaceURI, options.ProxyNamespaceURI)
	assert.Equal(t, []string{"com", "example", "utils"}, options.UtilsPackage)
	assert.Equal(t, map[string]string{"CONFIG::debug": "true", "CONFIG::release": "false"}, options.ConfigConstants)
}

func TestValidationReportsEveryProblem(t *testing.T) {
	buff := []byte(`
utils-package = ["flash", "1utils"]

[config-constants]
debug = true
`)

	_, err := ParseOptions(buff, "/work")
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestMalformedConfigurationFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte("as3-namespace = "), 0o644))

	_, err := LoadOptions(dir)
	assert.Error(t, err)
}

func TestLoadEnvSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "API_KEY=secret\nthis line is malformed\n# comment\nHOST=localhost\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.EnvFileName), []byte(content), 0o644))

	env, err := LoadEnv(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"API_KEY": "secret", "HOST": "localhost"}, env)

	env, err = LoadEnv(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, env)
}
