package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"dry/internal/diag"
	"dry/internal/source"
)

// bump when CachedOutput changes shape
const cacheSchemaVersion uint16 = 2

// DiskCache stores rendered expansion output keyed by input hash and settings.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedOutput is one cache entry. Only successful runs are stored, so
// Diagnostics holds warnings and infos at most.
type CachedOutput struct {
	Schema      uint16
	Hash        [32]byte // content hash of the input file
	Rendered    []byte
	Stats       Stats
	Diagnostics []diag.Diagnostic
}

func (c *CachedOutput) valid(file *source.File) bool {
	return c.Schema == cacheSchemaVersion && c.Hash == file.Hash
}

// restore replays the entry into res. FileIDs are per FileSet, so every span
// is rebound to the file the entry was looked up for.
func (c *CachedOutput) restore(res *Result) {
	res.Rendered = c.Rendered
	res.Stats = c.Stats
	res.Cached = true
	for _, d := range c.Diagnostics {
		d.Primary.File = res.FileID
		for i := range d.Notes {
			d.Notes[i].Span.File = res.FileID
		}
		for i := range d.Fixes {
			for j := range d.Fixes[i].Edits {
				d.Fixes[i].Edits[j].Span.File = res.FileID
			}
		}
		res.Bag.Add(d)
	}
}

func cachedFrom(res *Result, file *source.File) *CachedOutput {
	return &CachedOutput{
		Schema:      cacheSchemaVersion,
		Hash:        file.Hash,
		Rendered:    res.Rendered,
		Stats:       res.Stats,
		Diagnostics: res.Bag.Items(),
	}
}

// OpenDiskCache creates dir if needed.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный подкаталог, чтобы не копить тысячи файлов в одной папке
	return filepath.Join(c.dir, "out", hexKey[:2], hexKey+".mp")
}

// Put writes payload under key; the file appears atomically.
func (c *DiskCache) Put(key Digest, payload *CachedOutput) error {
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
	defer os.Remove(tmp) //nolint:errcheck

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the entry under key into out.
func (c *DiskCache) Get(key Digest, out *CachedOutput) (bool, error) {
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
	defer f.Close() //nolint:errcheck

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// сначала переименовываем, чтобы параллельный Get не увидел полупустой каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
