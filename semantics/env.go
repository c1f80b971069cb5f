package semantics

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/mxmlextrema/mxmlcaot/common"
)

// Env returns the variables of the meta-environment file of the project.  The
// file is read once; a missing or unreadable file yields an empty mapping.
func (db *Database) Env() map[string]string {
	if db.env != nil {
		return db.env
	}

	db.env = make(map[string]string)
	if db.projectPath == "" {
		return db.env
	}

	path := filepath.Join(db.projectPath, common.EnvFileName)
	vars, err := LoadEnvFile(path)
	if err != nil {
		db.logger.Debug("meta-environment not loaded", zap.String("path", path), zap.Error(err))
		return db.env
	}

	db.env = vars
	db.logger.Debug("meta-environment loaded", zap.String("path", path), zap.Int("count", len(vars)))
	return db.env
}

// LoadEnvFile reads a dotenv-style file.  Each line holds one `KEY=VALUE`
// pair; lines which do not parse are skipped.
func LoadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open environment file `%s`", path)
	}
	defer f.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		env, err := gotenv.StrictParse(strings.NewReader(line))
		if err != nil {
			continue
		}

		for k, v := range env {
			vars[k] = v
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read environment file `%s`", path)
	}

	return vars, nil
}
