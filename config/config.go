package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mxmlextrema/mxmlcaot/common"
	"github.com/mxmlextrema/mxmlcaot/semantics"
)

// tomlConfig represents the project configuration as it is encoded in TOML
type tomlConfig struct {
	ProjectPath     string                 `toml:"project-path"`
	AS3Namespace    string                 `toml:"as3-namespace"`
	ProxyNamespace  string                 `toml:"proxy-namespace"`
	UtilsPackage    []string               `toml:"utils-package"`
	ConfigConstants map[string]interface{} `toml:"config-constants"`
}

// LoadOptions loads the database options of the project in the directory
// `projectDir`.  A project without a configuration file gets the default
// options with its directory as the project path.
func LoadOptions(projectDir string) (semantics.DatabaseOptions, error) {
	options := semantics.DefaultDatabaseOptions()
	options.ProjectPath = projectDir

	path := filepath.Join(projectDir, common.ConfigFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return options, nil
		}

		return options, errors.Wrapf(err, "unable to open configuration file at `%s`", path)
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return options, errors.Wrapf(err, "error reading configuration file at `%s`", path)
	}

	return ParseOptions(buff, projectDir)
}

// ParseOptions parses a TOML configuration.  A relative project path is
// resolved against `projectDir`.
func ParseOptions(buff []byte, projectDir string) (semantics.DatabaseOptions, error) {
	options := semantics.DefaultDatabaseOptions()
	options.ProjectPath = projectDir

	tc := &tomlConfig{}
	if err := toml.Unmarshal(buff, tc); err != nil {
		return options, errors.Wrap(err, "error parsing configuration file")
	}

	if err := validateConfig(tc); err != nil {
		return options, err
	}

	if tc.ProjectPath != "" {
		if filepath.IsAbs(tc.ProjectPath) {
			options.ProjectPath = tc.ProjectPath
		} else {
			options.ProjectPath = filepath.Join(projectDir, tc.ProjectPath)
		}
	}

	if tc.AS3Namespace != "" {
		options.AS3NamespaceURI = tc.AS3Namespace
	}

	if tc.ProxyNamespace != "" {
		options.ProxyNamespaceURI = tc.ProxyNamespace
	}

	if len(tc.UtilsPackage) != 0 {
		options.UtilsPackage = tc.UtilsPackage
	}

	if len(tc.ConfigConstants) != 0 {
		options.ConfigConstants = make(map[string]string, len(tc.ConfigConstants))
		for k, v := range tc.ConfigConstants {
			options.ConfigConstants[k] = fmt.Sprint(v)
		}
	}

	return options, nil
}

// validateConfig checks every field of the configuration and returns all the
// problems found.
func validateConfig(tc *tomlConfig) error {
	var err error
	for i, name := range tc.UtilsPackage {
		if !isValidIdentifier(name) {
			err = multierr.Append(err, fmt.Errorf("utils-package[%d]: `%s` is not a valid identifier", i, name))
		}
	}

	keys := make([]string, 0, len(tc.ConfigConstants))
	for k := range tc.ConfigConstants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		// constants are referenced as `NAMESPACE::name`
		if ns, name, ok := strings.Cut(k, "::"); !ok || !isValidIdentifier(ns) || !isValidIdentifier(name) {
			err = multierr.Append(err, fmt.Errorf("config-constants: `%s` must be of the form `NS::name`", k))
		}

		switch tc.ConfigConstants[k].(type) {
		case string, bool, int64, float64:
		default:
			err = multierr.Append(err, fmt.Errorf("config-constants: `%s` must be a string, boolean or number", k))
		}
	}

	return err
}

// isValidIdentifier returns whether a string is an ActionScript identifier.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_', c == '$', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}

	return true
}

// LoadEnv loads the meta-environment file of a project.  A missing file yields
// an empty mapping.
func LoadEnv(projectPath string) (map[string]string, error) {
	path := filepath.Join(projectPath, common.EnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	return semantics.LoadEnvFile(path)
}
