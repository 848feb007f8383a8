package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tint/internal/diag"
	"tint/internal/project"
	"tint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file evaluation results keyed by content and
// options. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of one file. Spans keep only their byte
// offsets; the file is reattached on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path    string
	Decls   []CachedDecl
	Diags   []CachedDiag
	Asserts int
}

// CachedDecl is a rendered declaration.
type CachedDecl struct {
	Name       string
	Type       string
	Value      string
	Start, End uint32
}

// CachedDiag is a diagnostic without its file id.
type CachedDiag struct {
	Severity   uint8
	Code       uint16
	Message    string
	Start, End uint32
	Notes      []CachedNote
}

// CachedNote is a diagnostic note without its file id.
type CachedNote struct {
	Start, End uint32
	Msg        string
}

// OpenDiskCache opens the cache in dir, or in $XDG_CACHE_HOME/app
// (~/.cache/app) when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
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

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
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
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads and deserializes a payload from the disk cache. Payloads of an
// older schema count as misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
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
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
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

// resultToDiskPayload keeps what is needed to replay a result without
// evaluating the file again.
func resultToDiskPayload(res *Result) *DiskPayload {
	payload := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Path:    res.Path,
		Asserts: res.Asserts,
		Decls:   make([]CachedDecl, len(res.Decls)),
	}
	for i, d := range res.Decls {
		payload.Decls[i] = CachedDecl{Name: d.Name, Type: d.Type, Value: d.Value, Start: d.Span.Start, End: d.Span.End}
	}
	items := res.Bag.Items()
	payload.Diags = make([]CachedDiag, len(items))
	for i, d := range items {
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diags[i] = cd
	}
	return payload
}

// diskPayloadToResult rebuilds the declarations and diagnostics of payload
// against file.
func diskPayloadToResult(payload *DiskPayload, file source.FileID, bag *diag.Bag) ([]DeclResult, int) {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	decls := make([]DeclResult, len(payload.Decls))
	for i, d := range payload.Decls {
		decls[i] = DeclResult{Name: d.Name, Type: d.Type, Value: d.Value, Span: span(d.Start, d.End)}
	}
	for _, cd := range payload.Diags {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		bag.Add(d)
	}
	return decls, payload.Asserts
}
