// Package testutil provides shared test helpers for config files, dictionaries and databases.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dreamer/internal/config"
	"github.com/at-ishikawa/dreamer/internal/database"
	"github.com/at-ishikawa/dreamer/internal/meaning"
)

// SetupTestConfig creates a config file backed by a SQLite database and a
// reports directory under tmpDir. Remote lookups and translation are disabled.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	reportsDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(reportsDir, 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
translation:
  enabled: false
reports:
  output_directory: %s
`,
		filepath.Join(tmpDir, "dreams.db"),
		reportsDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithDictionary creates the config of SetupTestConfig pointing
// to a dictionary file with entries in language.
func SetupTestConfigWithDictionary(t *testing.T, tmpDir, language string, entries []meaning.DictionaryEntry) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)
	dictionaryPath := WriteDictionary(t, filepath.Join(tmpDir, "dictionary.yml"), language, entries)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("dictionary:\n  path: %s\nresolver:\n  base_language: %s\n", dictionaryPath, language))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// WriteDictionary writes a dictionary YAML file and returns its path.
func WriteDictionary(t *testing.T, path, language string, entries []meaning.DictionaryEntry) string {
	t.Helper()

	content, err := yaml.Marshal(struct {
		Language string                    `yaml:"language"`
		Entries  []meaning.DictionaryEntry `yaml:"entries"`
	}{
		Language: language,
		Entries:  entries,
	})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// OpenTestDB opens a migrated SQLite database in a temporary directory.
// It is closed when the test finishes.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "dreams.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
