// Package cache stores check results on disk, keyed by content.
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"lektor/internal/check"
	"lektor/internal/diag"
	"lektor/internal/source"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Key is the blake3 digest of everything that decides a result.
type Key [32]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor hashes the text together with the options and a fingerprint of
// the word lists (empty when spelling is off).
func KeyFor(text string, opts check.Options, lexicon string) Key {
	h := blake3.New()
	_, _ = h.Write([]byte{byte(schemaVersion), boolByte(opts.Commas), boolByte(opts.Spelling)})
	_, _ = h.Write([]byte(lexicon))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Fingerprint summarises files by path, size and modification time, so a
// changed dictionary invalidates cached spelling results.
func Fingerprint(paths ...string) string {
	h := blake3.New()
	for _, p := range paths {
		_, _ = h.Write([]byte(p))
		if info, err := os.Stat(p); err == nil {
			_, _ = h.Write([]byte(info.ModTime().UTC().Format(time.RFC3339Nano)))
			_, _ = h.Write([]byte{byte(info.Size()), byte(info.Size() >> 8), byte(info.Size() >> 16), byte(info.Size() >> 24)})
		}
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Payload is the stored form of a check.Result. Spans are kept as
// offsets; the file ID is assigned by the reader.
type Payload struct {
	Schema       uint16
	Issues       []PayloadIssue
	GrammarCount int
	SpellCount   int
	URLs         []string
}

type PayloadIssue struct {
	Code        uint16
	Start       uint32
	End         uint32
	Matched     string
	Suggestions []string
}

// FromResult converts a result for storage.
func FromResult(res *check.Result) *Payload {
	p := &Payload{
		Schema:       schemaVersion,
		Issues:       make([]PayloadIssue, len(res.Issues)),
		GrammarCount: res.GrammarCount,
		SpellCount:   res.SpellCount,
		URLs:         res.URLs,
	}
	for i, is := range res.Issues {
		p.Issues[i] = PayloadIssue{
			Code:        uint16(is.Code),
			Start:       is.Span.Start,
			End:         is.Span.End,
			Matched:     is.Matched,
			Suggestions: is.Suggestions,
		}
	}
	return p
}

// Result rebuilds a check.Result with spans in file.
func (p *Payload) Result(file source.FileID) *check.Result {
	res := &check.Result{
		Issues:       make([]diag.Issue, len(p.Issues)),
		GrammarCount: p.GrammarCount,
		SpellCount:   p.SpellCount,
		URLs:         p.URLs,
	}
	for i, is := range p.Issues {
		res.Issues[i] = diag.Issue{
			Code:        diag.Code(is.Code),
			Span:        source.Span{File: file, Start: is.Start, End: is.End},
			Matched:     is.Matched,
			Suggestions: is.Suggestions,
		}
	}
	return res
}

// DiskCache хранит результаты проверок на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache in dir, or in $XDG_CACHE_HOME/<app> when dir is empty.
func Open(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	// Подкаталог по первым двум символам, чтобы не раздувать один каталог.
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload.
func (c *DiskCache) Put(key Key, payload *Payload) error {
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
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a payload. A missing entry or one from another schema is a miss.
func (c *DiskCache) Get(key Key) (*Payload, bool, error) {
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
	var out Payload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != schemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
