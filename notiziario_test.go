package notiziario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("create new instance", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		n, err := New(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, n)
		defer n.Close()

		assert.NotNil(t, n.Knowledge())
		assert.NotNil(t, n.NewsRepository())
		assert.NotNil(t, n.RunRepository())
		assert.NotNil(t, n.AggregateRepository())
	})

	t.Run("in memory", func(t *testing.T) {
		n, err := New("", WithInMemory())
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.NoError(t, n.Close())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		n, err := New(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, n)
	})
}

func TestNotiziario_Factories(t *testing.T) {
	n, err := New("", WithInMemory())
	require.NoError(t, err)
	defer n.Close()

	a, err := n.NewAgent("test-agent", nil)
	require.NoError(t, err)
	assert.NotNil(t, a)

	engine, err := n.NewQueryEngine()
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNotiziario_Close(t *testing.T) {
	n, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, n.Close())
}
