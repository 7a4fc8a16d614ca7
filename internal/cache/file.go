package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type entry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FileCache keeps one JSON file per key so results survive between CLI runs.
type FileCache struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, _, ok := c.GetWithExpiry(ctx, key)
	return data, ok
}

func (c *FileCache) GetWithExpiry(_ context.Context, key string) ([]byte, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, time.Time{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, time.Time{}, false
	}
	if e.Key != key || !c.now().Before(e.ExpiresAt) {
		return nil, time.Time{}, false
	}
	return e.Data, e.ExpiresAt, true
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(entry{
		Key:       key,
		Data:      data,
		ExpiresAt: c.now().Add(ttl).UTC(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), raw, 0o644)
}

func (c *FileCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		_ = os.Remove(filepath.Join(c.dir, e.Name()))
	}
	return nil
}

func (c *FileCache) path(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".json")
}
