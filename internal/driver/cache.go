package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"beautysh/internal/format"
)

// Increment when the payload format changes.
const cleanCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest = [sha256.Size]byte

// CleanCache remembers which (content, options) pairs are already
// formatted, so unchanged trees are skipped on repeat runs.
// Thread-safe for concurrent access.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
}

// CleanPayload is the metadata stored per clean file, mostly for
// debuggability when poking at the cache directory.
type CleanPayload struct {
	Schema    uint16
	Path      string
	Size      int64
	CheckedAt int64
}

// OpenCleanCache initializes and returns a disk cache at the standard
// location under XDG_CACHE_HOME.
func OpenCleanCache(app string) (*CleanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

// CacheKey hashes the script content together with the formatting options
// that would apply to it. Any option change invalidates every entry.
func CacheKey(content string, opts format.Options) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%t|%s|%s\x00", opts.IndentSize, opts.UseTabs, opts.FunctionStyle, opts.VariableStyle)
	_, _ = h.Write([]byte(content))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *CleanCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "clean", hexKey+".mp")
}

// Put records a clean file under its content key. Writes go through a
// temp file and rename so concurrent runs never see a torn entry.
func (c *CleanCache) Put(key Digest, payload *CleanPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reports whether the key names content already known clean. Entries
// written under a different schema version are ignored.
func (c *CleanCache) Get(key Digest) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var payload CleanPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return false, err
	}
	return payload.Schema == cleanCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func newCleanPayload(path string, size int64) *CleanPayload {
	return &CleanPayload{
		Schema:    cleanCacheSchemaVersion,
		Path:      path,
		Size:      size,
		CheckedAt: time.Now().Unix(),
	}
}
