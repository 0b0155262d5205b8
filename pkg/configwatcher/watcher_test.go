package configwatcher

import (
	"edulearn_backend/internal/config"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: debug
storage:
  type: minio
rate_limit:
  max_requests: %d
`

func write(t *testing.T, dir string, maxRequests int) {
	t.Helper()
	body := fmt.Sprintf(baseConfig, maxRequests)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, 10)

	var (
		mu  sync.Mutex
		got *config.Config
	)
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(dir, stop, func(cfg *config.Config) {
			mu.Lock()
			got = cfg
			mu.Unlock()
		})
	}()

	// give the watcher time to register before the write
	time.Sleep(200 * time.Millisecond)
	write(t, dir, 42)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.RateLimit.MaxRequests == 42
	}, 5*time.Second, 50*time.Millisecond)

	close(stop)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)
	err := WatchConfig(filepath.Join(t.TempDir(), "missing"), stop, func(*config.Config) {})
	assert.Error(t, err)
}
