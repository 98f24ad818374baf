package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataDefaultsToEmbeddedSet(t *testing.T) {
	data, err := loadData("")
	require.NoError(t, err)
	assert.NotEmpty(t, data.Users)
	assert.NotEmpty(t, data.Posts)
}

func TestLoadDataReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	raw := []byte(`users:
  - id: 1
    name: Only Author
    username: only
    email: only@example.com
    phone: "1"
posts: []
comments: []
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	data, err := loadData(path)
	require.NoError(t, err)
	require.Len(t, data.Users, 1)
	assert.Equal(t, "Only Author", data.Users[0].Name)
}

func TestLoadDataMissingFile(t *testing.T) {
	_, err := loadData(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
