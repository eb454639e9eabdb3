package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLocalConfig(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "subdir")
	err := os.Mkdir(subDir, 0o755)
	assert.NoError(t, err)

	configYML := filepath.Join(subDir, ".swiftdriver.yml")
	err = os.WriteFile(configYML, []byte("jobs: 2"), 0o644)
	assert.NoError(t, err)

	// Test finding in subdir
	result := FindLocalConfig(subDir)
	assert.Equal(t, configYML, result)

	// Test finding in parent
	result = FindLocalConfig(filepath.Join(subDir, "deep"))
	assert.Equal(t, configYML, result)

	// Test not found
	result = FindLocalConfig(tempDir)
	assert.Equal(t, "", result)
}

func TestFindLocalConfig_ExtensionOrder(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{".swiftdriver.toml", ".swiftdriver.json"} {
		err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644)
		assert.NoError(t, err)
	}

	assert.Equal(t, filepath.Join(dir, ".swiftdriver.json"), FindLocalConfig(dir))
}

func TestFindLocalConfig_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	err := os.Mkdir(filepath.Join(dir, ".swiftdriver.yml"), 0o755)
	assert.NoError(t, err)

	assert.Equal(t, "", FindLocalConfig(dir))
}
