package embedding

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
)

// Cache wraps an Embedder with an in-memory vector cache and an optional
// on-disk one. Repeat runs against the same resume then skip inference for
// every sentence that did not change.
type Cache struct {
	inner Embedder
	dir   string

	mu  sync.RWMutex
	mem map[string][]float32
}

// NewCache builds a caching wrapper. An empty dir disables the disk layer.
func NewCache(inner Embedder, dir string) (*Cache, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating embedding cache dir %q: %w", dir, err)
		}
	}
	return &Cache{inner: inner, dir: dir, mem: make(map[string][]float32)}, nil
}

// EmbedText returns a cached vector when one exists, otherwise defers to the
// wrapped embedder and stores the result. Callers get a private copy so
// nobody can corrupt the cache through the returned slice.
func (c *Cache) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(c.inner.ModelID(), text)

	c.mu.RLock()
	vec, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return cloneVector(vec), nil
	}

	if vec, ok := c.loadFromDisk(key); ok {
		c.store(key, vec)
		return cloneVector(vec), nil
	}

	vec, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	c.store(key, vec)
	// A failed disk write only costs a future cache miss.
	c.saveToDisk(key, vec)
	return cloneVector(vec), nil
}

// EmbedTexts embeds a batch through the cache one text at a time.
func (c *Cache) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := c.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

// ModelID reports the wrapped embedder's model identity.
func (c *Cache) ModelID() string {
	return c.inner.ModelID()
}

// Close closes the wrapped embedder.
func (c *Cache) Close() error {
	return c.inner.Close()
}

func (c *Cache) store(key string, vec []float32) {
	c.mu.Lock()
	c.mem[key] = cloneVector(vec)
	c.mu.Unlock()
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".bin")
}

// loadFromDisk reads a cached vector. Any malformed file is treated as a
// miss so a truncated write never poisons a run.
func (c *Cache) loadFromDisk(key string) ([]float32, bool) {
	if c.dir == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil || len(data) < 4 {
		return nil, false
	}

	n := int(binary.LittleEndian.Uint32(data[:4]))
	if n < 0 || len(data) != 4+n*4 {
		return nil, false
	}

	vec := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(data[4+i*4:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, true
}

// saveToDisk persists a vector as a length-prefixed little-endian float32
// blob, written to a temp file and renamed so readers never see a partial
// file.
func (c *Cache) saveToDisk(key string, vec []float32) {
	if c.dir == "" {
		return
	}

	data := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(data[:4], uint32(len(vec)))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(data[4+i*4:], math.Float32bits(v))
	}

	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
	}
}

func cacheKey(modelID, text string) string {
	sum := sha1.Sum([]byte(modelID + "|" + text))
	return hex.EncodeToString(sum[:])
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
