package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one check of one file.
type CacheKey [32]byte

// DiskCache хранит результаты проверки файлов по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is the persisted form of diag.Diagnostic; spans are stored
// as offsets and re-bound to the current FileID on load.
type CachedDiagnostic struct {
	Line    int
	Code    uint16
	Keyword string
	Name    string
	Message string
	Start   uint32
	End     uint32
}

// CachedResult is everything needed to replay a file check without parsing.
type CachedResult struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
	Dropped     int
	// Синтаксическая ошибка, если файл не разобрался.
	SyntaxLine int
	SyntaxCol  int
	SyntaxMsg  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
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

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
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

// KeyFor: H(schema || toolVersion || path || content hash || maxDiagnostics).
func KeyFor(toolVersion string, file *source.File, maxDiagnostics int) CacheKey {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	_, _ = h.Write([]byte(toolVersion))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(file.Path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(file.Hash[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(max(maxDiagnostics, 0)))
	_, _ = h.Write(buf[:])
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// раскладываем по подкаталогам, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachedResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp)
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a result. Entries from another schema are misses.
func (c *DiskCache) Get(key CacheKey, out *CachedResult) (bool, error) {
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

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, затем удалим
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

func toCached(path string, diags []diag.Diagnostic, dropped int, synErr *InputError) *CachedResult {
	res := &CachedResult{
		Path:        path,
		Diagnostics: make([]CachedDiagnostic, len(diags)),
		Dropped:     dropped,
	}
	for i, d := range diags {
		res.Diagnostics[i] = CachedDiagnostic{
			Line:    d.Line,
			Code:    uint16(d.Code),
			Keyword: d.Args.Keyword,
			Name:    d.Args.Name,
			Message: d.Message,
			Start:   d.Primary.Start,
			End:     d.Primary.End,
		}
	}
	if synErr != nil {
		res.SyntaxLine = synErr.Line()
		res.SyntaxMsg = synErr.Message()
		res.SyntaxCol = syntaxCol(synErr)
	}
	return res
}

// fromCached восстанавливает диагностики для файла из текущего FileSet.
func fromCached(res *CachedResult, file *source.File) ([]diag.Diagnostic, *InputError) {
	diags := make([]diag.Diagnostic, len(res.Diagnostics))
	for i, cd := range res.Diagnostics {
		d := diag.New(diag.Code(cd.Code), res.Path, cd.Line, diag.Args{Keyword: cd.Keyword, Name: cd.Name})
		d.Message = cd.Message
		diags[i] = d.WithSpan(source.Span{File: file.ID, Start: cd.Start, End: cd.End})
	}
	if res.SyntaxMsg != "" {
		return nil, syntaxError(file.Path, res.SyntaxLine, res.SyntaxCol, res.SyntaxMsg)
	}
	return diags, nil
}
