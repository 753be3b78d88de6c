package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"aegis/internal/sig"
)

// Current schema version - increment when cachedSignature format changes
const sigCacheSchemaVersion uint16 = 1

// SignatureCache stores extracted signatures on disk, keyed by content hash.
// Thread-safe for concurrent access.
type SignatureCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedSignature is a cache entry. Failed parses are never cached.
type cachedSignature struct {
	Schema    uint16         `msgpack:"schema"`
	Engine    string         `msgpack:"engine"`
	Path      string         `msgpack:"path"`
	Signature *sig.Signature `msgpack:"signature"`
}

// CacheDir returns $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func CacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenSignatureCache initializes and returns a cache at the standard location.
func OpenSignatureCache(app string) (*SignatureCache, error) {
	dir, err := CacheDir(app)
	if err != nil {
		return nil, err
	}
	return NewSignatureCache(dir)
}

// NewSignatureCache creates a cache rooted at dir.
func NewSignatureCache(dir string) (*SignatureCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SignatureCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *SignatureCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *SignatureCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "sigs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a signature to the cache.
func (c *SignatureCache) Put(key Digest, engine, path string, s *sig.Signature) (err error) {
	if c == nil || s == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload := cachedSignature{
		Schema:    sigCacheSchemaVersion,
		Engine:    engine,
		Path:      path,
		Signature: s,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a signature from the cache. Entries from another schema count as a miss.
func (c *SignatureCache) Get(key Digest) (*sig.Signature, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedSignature
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != sigCacheSchemaVersion || payload.Signature == nil {
		return nil, false, nil
	}
	return payload.Signature, true, nil
}

// DropAll removes the whole cache.
func (c *SignatureCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем, чтобы параллельный Put не писал в удаляемый каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
