package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes each relative path/content pair under a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

// WriteScenario writes a single scenario file and returns its path.
func WriteScenario(t *testing.T, content string) string {
	t.Helper()
	root := WriteFiles(t, map[string]string{"scenarios/main.hcl": content})
	return filepath.Join(root, "scenarios", "main.hcl")
}
