package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"mica/internal/layout"
)

// cacheSchemaVersion invalidates every stored payload when the format
// changes.
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// DiskPayload is the cached image of one translated file. The source
// hash and target are stored alongside the IR so a payload stays
// self-describing even though the lookup key already covers both.
type DiskPayload struct {
	Schema uint16
	Source Digest
	Target layout.Target
	IR     string
}

// DiskCache stores rendered IR keyed by source and target digests.
// Safe for concurrent use by the batch driver.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a cache under the user cache directory,
// honoring XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory "ir" keeps the root free for future artifact kinds.
	return filepath.Join(c.dir, "ir", hexKey+".mp")
}

// Put serializes the payload under key with a temp-file write and an
// atomic rename.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get deserializes the payload stored under key. A missing entry is
// (false, nil); a present but unreadable entry is an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// cacheKey folds the schema version, the target sizes and the source
// bytes into the lookup digest, so differing targets never alias.
func cacheKey(content []byte, target layout.Target) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "mica-ir/%d/%d/%d/%d\n",
		cacheSchemaVersion, target.IntSize, target.BoolSize, target.PtrSize)
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// hashBytes is the plain content digest stored inside payloads.
func hashBytes(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}
