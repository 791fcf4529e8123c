package aioconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileJSON(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.json", `{
		"debug": "yes",
		"database": {"host": "filehost", "port": 9000}
	}`)

	tree, err := LoadFile(spec, path)
	require.NoError(t, err)

	assert.Equal(t, true, tree["debug"], "string coerced through bool token set")
	db := tree["database"].(map[string]any)
	assert.Equal(t, "filehost", db["host"])
	assert.Equal(t, int64(9000), db["port"], "json numbers land as int64 for int options")
}

func TestLoadFileYAML(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.yaml", `
debug: true
database:
  host: yamlhost
  port: 9100
`)

	tree, err := LoadFile(spec, path)
	require.NoError(t, err)

	assert.Equal(t, true, tree["debug"])
	db := tree["database"].(map[string]any)
	assert.Equal(t, "yamlhost", db["host"])
	assert.Equal(t, int64(9100), db["port"])
}

func TestLoadFileINI(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.ini", `
debug = on

[database]
host = inihost
port = 9200
`)

	tree, err := LoadFile(spec, path)
	require.NoError(t, err)

	assert.Equal(t, true, tree["debug"])
	db := tree["database"].(map[string]any)
	assert.Equal(t, "inihost", db["host"])
	assert.Equal(t, int64(9200), db["port"])
}

func TestLoadFileTOML(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.toml", `
debug = true

[database]
host = "tomlhost"
port = 9300
`)

	tree, err := LoadFile(spec, path)
	require.NoError(t, err)

	assert.Equal(t, true, tree["debug"])
	db := tree["database"].(map[string]any)
	assert.Equal(t, "tomlhost", db["host"])
	assert.Equal(t, int64(9300), db["port"])
}

func TestLoadFileAbsentSources(t *testing.T) {
	spec := buildNestedSpec()

	t.Run("EmptyPath", func(t *testing.T) {
		tree, err := LoadFile(spec, "")
		require.NoError(t, err)
		assert.Empty(t, tree)
	})

	t.Run("MissingFile", func(t *testing.T) {
		tree, err := LoadFile(spec, filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Empty(t, tree)
	})

	t.Run("UnrecognizedExtension", func(t *testing.T) {
		path := writeFixture(t, "conf.txt", "debug: true")
		tree, err := LoadFile(spec, path)
		require.NoError(t, err)
		assert.Empty(t, tree)
	})
}

func TestLoadFileMalformedContent(t *testing.T) {
	spec := buildNestedSpec()

	tests := []struct {
		name    string
		file    string
		content string
		format  string
	}{
		{"JSON", "bad.json", `{"debug": `, "json"},
		{"YAML", "bad.yaml", "debug: [unclosed", "yaml"},
		{"INI", "bad.ini", "[section\nkey=", "ini"},
		{"TOML", "bad.toml", "debug = = true", "toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.file, tt.content)
			_, err := LoadFile(spec, path)
			require.Error(t, err)

			var formatErr *FileFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.format, formatErr.Format)
			assert.Equal(t, path, formatErr.Path)
		})
	}
}

func TestLoadFileCoercionFailure(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.json", `{"database": {"port": "not-a-number"}}`)

	_, err := LoadFile(spec, path)
	require.Error(t, err)

	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "database.port", invalid.Path)
}

func TestLoadFileUnknownKeysPassThrough(t *testing.T) {
	spec := buildNestedSpec()
	path := writeFixture(t, "conf.json", `{"debug": true, "extra": "kept"}`)

	tree, err := LoadFile(spec, path)
	require.NoError(t, err)
	assert.Equal(t, "kept", tree["extra"])
}
