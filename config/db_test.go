package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDBProvider(t *testing.T) {
	cfg := TestConfig().SetRoot(t.TempDir())

	db, err := DefaultDBProvider(&DBContext{ID: "light", Config: cfg})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	cfg.DBBackend = "unknown"
	_, err = DefaultDBProvider(&DBContext{ID: "light", Config: cfg})
	assert.Error(t, err)
}
