package cache

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// entryExt names cache entry files. Anything else under the directory is
// left alone by Clear, Prune and Size.
const entryExt = ".entry"

// FileCache keeps one file per entry under a directory, fanned out by the
// first byte of the key digest. Each file holds the expiry as Unix
// nanoseconds (0 for none) on its first line, followed by the raw payload,
// so cached SVG and PNG bytes are stored as written.
//
// Writes go through a temp file and a rename, so concurrent panlayout
// processes sharing a directory never read a partial entry.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expires, data, ok := decodeEntry(raw)
	if !ok || expired(expires, time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set writes data under key. A ttl of zero or less never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encodeEntry(expires, data)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error { return nil }

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Clear removes every entry and returns how many were deleted. The cache
// directory itself is kept.
func (c *FileCache) Clear() (int, error) {
	n, err := c.removeIf(func(string) bool { return true })
	c.removeEmptyDirs()
	return n, err
}

// Prune removes expired and unreadable entries and returns how many were
// deleted.
func (c *FileCache) Prune() (int, error) {
	now := time.Now()
	return c.removeIf(func(path string) bool {
		expires, ok := readExpiry(path)
		return !ok || expired(expires, now)
	})
}

// Size returns the number of entries and their total size in bytes.
func (c *FileCache) Size() (entries int, size int64, err error) {
	err = c.walkEntries(func(path string, d fs.DirEntry) {
		if info, err := d.Info(); err == nil {
			entries++
			size += info.Size()
		}
	})
	return entries, size, err
}

func (c *FileCache) removeIf(match func(path string) bool) (int, error) {
	n := 0
	err := c.walkEntries(func(path string, _ fs.DirEntry) {
		if match(path) && os.Remove(path) == nil {
			n++
		}
	})
	return n, err
}

func (c *FileCache) walkEntries(fn func(path string, d fs.DirEntry)) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.dir {
				return err
			}
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == entryExt {
			fn(path, d)
		}
		return nil
	})
}

// removeEmptyDirs drops fan-out directories that Clear emptied.
func (c *FileCache) removeEmptyDirs() {
	subdirs, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, d := range subdirs {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name())) // fails unless empty
		}
	}
}

func (c *FileCache) path(key string) string {
	sum := Digest([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+entryExt)
}

func encodeEntry(expires int64, data []byte) []byte {
	head := strconv.AppendInt(nil, expires, 10)
	out := make([]byte, 0, len(head)+1+len(data))
	out = append(out, head...)
	out = append(out, '\n')
	return append(out, data...)
}

func decodeEntry(raw []byte) (expires int64, data []byte, ok bool) {
	head, data, found := bytes.Cut(raw, []byte{'\n'})
	if !found {
		return 0, nil, false
	}
	expires, err := strconv.ParseInt(string(head), 10, 64)
	if err != nil {
		return 0, nil, false
	}
	return expires, data, true
}

// readExpiry reads only the header line of an entry file.
func readExpiry(path string) (int64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()
	buf := make([]byte, 24)
	n, _ := f.Read(buf)
	expires, _, ok := decodeEntry(buf[:n])
	return expires, ok
}

func expired(expires int64, now time.Time) bool {
	return expires != 0 && now.UnixNano() > expires
}

var _ Cache = (*FileCache)(nil)
