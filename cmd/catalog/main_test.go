package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 5 units, 8 words")
}

func TestValidateRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback_unit: nowhere\nunits: []\n"), 0o644))

	_, err := run(t, "validate", path)
	assert.Error(t, err)
}

func TestImportThenListUnits(t *testing.T) {
	dbPath := "file:" + filepath.Join(t.TempDir(), "catalog.db")

	out, err := run(t, "import", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "content imported")

	out, err = run(t, "units", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "unit-1")
	assert.Contains(t, out, "Unit 3: Family")
}
