// Package testutil provides helpers for building temp-directory fixtures
// and fault-injecting filesystems used across clir's tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDir creates a directory (and parents) under root
func CreateDir(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

// CreateFile creates a file of the given size in bytes under root,
// creating parent directories as needed.
func CreateFile(t *testing.T, root, name string, size int) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

// WriteRulesFile writes a flat rules file with one pattern per line
func WriteRulesFile(t *testing.T, path string, patterns []string) {
	t.Helper()
	content := ""
	if len(patterns) > 0 {
		content = strings.Join(patterns, "\n") + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ReadRulesFile reads a flat rules file back into its non-empty lines
func ReadRulesFile(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
