package session

import (
	"sync"
	"testing"

	"courtside/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
	}
}

func TestAppendAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append("s1", model.NewUserMessage("hello")))
			require.NoError(t, store.Append("s1",
				model.Message{Role: model.RoleAssistant, Name: "The Sharp", Content: "hi"},
			))

			history, err := store.Get("s1")
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, "hello", history[0].Content)
			assert.Equal(t, "The Sharp", history[1].Name)
		})
	}
}

func TestGetUnknownSessionIsEmpty(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			history, err := store.Get("nope")
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestGetReturnsCopy(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append("s1", model.NewUserMessage("original")))

			history, err := store.Get("s1")
			require.NoError(t, err)
			history[0].Content = "mutated"

			again, err := store.Get("s1")
			require.NoError(t, err)
			assert.Equal(t, "original", again[0].Content)
		})
	}
}

func TestTrim(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				require.NoError(t, store.Append("s1", model.NewUserMessage("m")))
			}
			require.NoError(t, store.Trim("s1", 3))

			history, err := store.Get("s1")
			require.NoError(t, err)
			assert.Len(t, history, 3)

			// Trimming below the window is a no-op.
			require.NoError(t, store.Trim("s1", 10))
			history, err = store.Get("s1")
			require.NoError(t, err)
			assert.Len(t, history, 3)

			// Non-positive windows never truncate.
			require.NoError(t, store.Trim("s1", 0))
			history, err = store.Get("s1")
			require.NoError(t, err)
			assert.Len(t, history, 3)
		})
	}
}

func TestReset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append("s1", model.NewUserMessage("m")))
			require.NoError(t, store.Reset("s1"))

			history, err := store.Get("s1")
			require.NoError(t, err)
			assert.Empty(t, history)

			// Resetting an unknown session is fine.
			require.NoError(t, store.Reset("never-existed"))
		})
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Append("s1", model.NewUserMessage("survives")))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	history, err := reopened.Get("s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "survives", history[0].Content)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, store.Append("s1", model.NewUserMessage("m")))
			}
		}()
	}
	wg.Wait()

	history, err := store.Get("s1")
	require.NoError(t, err)
	assert.Len(t, history, 200)
}
