package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhforecast/household-forecast/internal/storage"
)

func TestServeStore(t *testing.T) {
	dir := t.TempDir()
	o := &options{storeDir: dir, key: storage.DefaultKey}

	store, err := o.serveStore("")
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, store)

	store, err = o.serveStore(filepath.Join("..", "..", "test", "testdata", "household.yaml"))
	require.NoError(t, err)
	m, err := store.Load(context.Background(), storage.DefaultKey)
	require.NoError(t, err)
	assert.Len(t, m.Families, 3)
	assert.Len(t, m.MonthlyBalances, 3)
	assert.NoFileExists(t, filepath.Join(dir, "household.json"))

	_, err = o.serveStore(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultAddr(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, ":8080", defaultAddr())
	t.Setenv("PORT", "9090")
	assert.Equal(t, ":9090", defaultAddr())
}
