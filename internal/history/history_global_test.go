package history

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetManager() {
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	Manager.Lock()
	Manager.store = nil
	Manager.Unlock()
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite file", func(t *testing.T) {
		resetManager()
		dbPath := filepath.Join(t.TempDir(), "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetHistoryStore(), "History store should not be nil")

		CloseStores()

		_, err := os.Stat(dbPath)
		assert.False(t, os.IsNotExist(err), "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetManager()
		dbPath := filepath.Join(t.TempDir(), "history.db")

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		first := Manager.GetHistoryStore()
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.Same(t, first, Manager.GetHistoryStore())

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetManager()
		require.NoError(t, InitStores(schema.NoneBackend, ""))

		store := Manager.GetHistoryStore()
		require.NotNil(t, store)
		runID, err := store.BeginRun(time.Now(), nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), runID)
		CloseStores()
	})

	t.Run("empty backend", func(t *testing.T) {
		resetManager()
		require.NoError(t, InitStores("", ""))
		assert.Nil(t, Manager.GetHistoryStore())
		CloseStores()
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetManager()
		err := InitStores(schema.DatabaseBackend("oracle"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize render history")
		assert.Nil(t, Manager.GetHistoryStore())
	})
	resetManager()
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Clearing twice is fine
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := ClearHistory(schema.DatabaseBackend("oracle"), "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported history backend for clearing")
	})
}
