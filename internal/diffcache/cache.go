// Package diffcache stores rendered patch text on disk, keyed by commit
// hash, so repeated runs over the same repository skip the expensive
// libgit2 diff work. Entries are LZ4 block-compressed with the raw size
// stored in an 8-byte little-endian header.
package diffcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
)

// ErrCorruptEntry is returned when a cache file cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt cache entry")

const (
	headerSize    = 8
	entryFileMode = 0o644
	dirMode       = 0o755
	entrySuffix   = ".patch.lz4"

	// lz4MaxExpansion is the worst-case decompressed-to-compressed ratio
	// of an LZ4 block; a size header claiming more is corrupt.
	lz4MaxExpansion = 255
)

// Cache is an on-disk patch cache. A nil Cache is a valid no-op cache:
// Get always misses and Put discards.
type Cache struct {
	dir string
}

// Open creates the cache directory if needed and returns a cache rooted
// there.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create cache dir %q: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+entrySuffix)
}

// Get returns the cached patch text for key. The second result is false
// on a miss.
func (c *Cache) Get(key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}

	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read cache entry %q: %w", key, err)
	}

	text, err := decode(data)
	if err != nil {
		return "", false, fmt.Errorf("entry %q: %w", key, err)
	}

	return text, true, nil
}

// Put stores patch text under key. The write goes through a temp file
// and rename so concurrent readers never see a partial entry.
func (c *Cache) Put(key, text string) error {
	if c == nil {
		return nil
	}

	encoded := encode(text)

	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp entry for %q: %w", key, err)
	}

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("write cache entry %q: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache entry %q: %w", key, err)
	}

	if err := os.Chmod(tmp.Name(), entryFileMode); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod cache entry %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), c.entryPath(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit cache entry %q: %w", key, err)
	}

	return nil
}

func encode(text string) []byte {
	raw := []byte(text)
	if len(raw) == 0 {
		// Header-only entry: the zero marker with no body decodes to "".
		return make([]byte, headerSize)
	}

	out := make([]byte, headerSize+lz4.CompressBlockBound(len(raw)))
	binary.LittleEndian.PutUint64(out, uint64(len(raw)))

	written, err := lz4.CompressBlock(raw, out[headerSize:], nil)
	if err != nil || written == 0 {
		// Incompressible payloads are stored raw with a zero marker.
		out = make([]byte, headerSize+len(raw))
		binary.LittleEndian.PutUint64(out, 0)
		copy(out[headerSize:], raw)

		return out
	}

	return out[:headerSize+written]
}

func decode(data []byte) (string, error) {
	if len(data) < headerSize {
		return "", ErrCorruptEntry
	}

	rawSize := binary.LittleEndian.Uint64(data)
	if rawSize == 0 {
		return string(data[headerSize:]), nil
	}

	// The header is attacker- and corruption-controlled; never allocate
	// more than an LZ4 block of this compressed size could expand to.
	compressed := uint64(len(data) - headerSize)
	if compressed == 0 || rawSize > compressed*lz4MaxExpansion {
		return "", ErrCorruptEntry
	}

	raw := make([]byte, rawSize)

	n, err := lz4.UncompressBlock(data[headerSize:], raw)
	if err != nil || uint64(n) != rawSize {
		return "", ErrCorruptEntry
	}

	return string(raw), nil
}
