package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wentf9/mesh-wizard/pkg/crypto"
)

func TestIsYes(t *testing.T) {
	assert.True(t, IsYes("y"))
	assert.True(t, IsYes(" YES "))
	assert.False(t, IsYes(""))
	assert.False(t, IsYes("no"))
}

func TestLoaderOptions(t *testing.T) {
	opts, err := LoaderOptions("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	missing := filepath.Join(t.TempDir(), "none.key")
	opts, err = LoaderOptions(missing)
	require.NoError(t, err)
	assert.Empty(t, opts)

	keyFile := filepath.Join(t.TempDir(), "k.key")
	_, err = crypto.GenerateKey(keyFile, false)
	require.NoError(t, err)
	opts, err = LoaderOptions(keyFile)
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
