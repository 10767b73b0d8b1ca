package res

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when a local file or remote URL does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrHTTPStatus is wrapped by every non-2xx response
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrTooLarge is returned when a resource exceeds the loader's size limit
	ErrTooLarge = errors.New("resource too large")
	// ErrLocalDisabled is returned for a file reference when the loader
	// only serves remote and data URLs
	ErrLocalDisabled = errors.New("local resources disabled")
)

// StatusError reports a non-2xx HTTP response
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return ErrHTTPStatus }

// Is lets a 404 match ErrNotFound
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// IsSVG reports whether the resource holds SVG markup
func (r *Resource) IsSVG() bool {
	if strings.HasPrefix(r.MimeType, "image/svg") {
		return true
	}
	head := strings.TrimSpace(string(r.Data[:min(len(r.Data), 512)]))
	return strings.HasPrefix(head, "<svg") || (strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<svg"))
}

// Loader handles loading resources from data URLs, HTTP(S) and the local
// file system. Successful loads are cached for the loader's lifetime.
type Loader struct {
	// BaseDir resolves relative local paths
	BaseDir string
	// Timeout bounds each remote fetch; zero means no limit beyond the
	// caller's context
	Timeout time.Duration
	// MaxBytes caps the size of a single resource; zero means no limit
	MaxBytes int64
	// DisableLocal rejects file references other than those marked with
	// Trust
	DisableLocal bool

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string
	trusted     map[string]bool
	client      *http.Client
}

// NewLoader creates a new resource loader
func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir: baseDir,
		cache:   make(map[string]*Resource),
		client:  &http.Client{},
	}
}

// SetHTTPClient replaces the client used for remote resources
func (l *Loader) SetHTTPClient(c *http.Client) {
	l.client = c
}

// Trust allows ref to be read from the file system even when DisableLocal
// is set
func (l *Loader) Trust(ref string) {
	if l.trusted == nil {
		l.trusted = make(map[string]bool)
	}
	l.trusted[strings.TrimSpace(ref)] = true
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a data URL, an HTTP(S) URL or a file path
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty resource reference: %w", ErrNotFound)
	}

	l.cacheLock.RLock()
	if res, ok := l.cache[ref]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		res, err = parseDataURL(ref)
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		res, err = l.loadRemote(ctx, ref)
	case l.DisableLocal && !l.trusted[ref]:
		err = fmt.Errorf("%s: %w", ref, ErrLocalDisabled)
	default:
		res, err = l.loadLocal(l.resolvePath(ref))
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[ref] = res
	l.cacheLock.Unlock()
	return res, nil
}

// parseDataURL parses a data URL (RFC 2397).
// Examples:
//
//	data:image/png;base64,<base64>
//	data:image/svg+xml,%3Csvg...
func parseDataURL(u string) (*Resource, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	mime := "application/octet-stream"
	isBase64 := false
	comps := strings.Split(meta, ";")
	if comps[0] != "" {
		mime = comps[0]
	}
	for _, c := range comps[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.PathUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}
	return &Resource{URL: "data:" + mime, Data: data, MimeType: mime}, nil
}

// resolvePath resolves a local path against the base directory
func (l *Loader) resolvePath(p string) string {
	p = strings.TrimPrefix(p, "file://")
	if filepath.IsAbs(p) || l.BaseDir == "" {
		return p
	}
	return filepath.Join(l.BaseDir, p)
}

func (l *Loader) readAll(r io.Reader, ref string) ([]byte, error) {
	if l.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, l.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.MaxBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", ref, ErrTooLarge, l.MaxBytes)
	}
	return data, nil
}

// loadRemote loads a resource from a remote URL. There is one attempt;
// the caller decides what to draw when it fails.
func (l *Loader) loadRemote(ctx context.Context, urlStr string) (*Resource, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: urlStr, Code: resp.StatusCode}
	}

	data, err := l.readAll(resp.Body, urlStr)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}, nil
}

// loadLocal loads a resource from a local file, falling back to the
// search paths
func (l *Loader) loadLocal(path string) (*Resource, error) {
	res, err := l.readFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	return res, err
}

func (l *Loader) readFile(path string) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := l.readAll(file, path)
	if err != nil {
		return nil, err
	}
	return &Resource{URL: path, Data: data, MimeType: determineMimeType(path)}, nil
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, dir := range l.searchPaths {
		if res, err := l.readFile(filepath.Join(dir, base)); err == nil {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filename, ErrNotFound)
}

// determineMimeType determines the MIME type of an image file
func determineMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
