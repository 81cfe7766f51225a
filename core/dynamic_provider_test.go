package core

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderManager(t *testing.T) {
	t.Run("snapshot pairs store with its config", func(t *testing.T) {
		cfg := AppConfig{StoragePath: t.TempDir(), MaxCommits: 3}
		pm, err := NewProviderManager(cfg, nil)
		require.NoError(t, err)

		store, got := pm.Snapshot()
		assert.Equal(t, cfg, got)
		assert.Equal(t, filepath.Join(cfg.ReposDir(), "demo.git"), store.Path("demo"))
	})

	t.Run("update swaps store and config together", func(t *testing.T) {
		pm, err := NewProviderManager(AppConfig{StoragePath: t.TempDir()}, nil)
		require.NoError(t, err)

		next := AppConfig{StoragePath: t.TempDir(), MaxTreeDepth: 7}
		require.NoError(t, pm.UpdateProviders(next))

		store, got := pm.Snapshot()
		assert.Equal(t, next, got)
		assert.Equal(t, filepath.Join(next.ReposDir(), "demo.git"), store.Path("demo"))
	})

	t.Run("snapshots never mix generations during swaps", func(t *testing.T) {
		a := AppConfig{StoragePath: t.TempDir(), MaxCommits: 1}
		b := AppConfig{StoragePath: t.TempDir(), MaxCommits: 2}
		pm, err := NewProviderManager(a, nil)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				next := a
				if i%2 == 0 {
					next = b
				}
				assert.NoError(t, pm.UpdateProviders(next))
			}
		}()

		for i := 0; i < 200; i++ {
			store, cfg := pm.Snapshot()
			assert.Equal(t, filepath.Join(cfg.ReposDir(), "x.git"), store.Path("x"))
		}
		wg.Wait()
	})
}
