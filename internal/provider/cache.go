package provider

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// diskCache stores one file per fetched page. Freshness is the file's own
// mtime against the TTL, so clearing the cache is just deleting files.
type diskCache struct {
	dir string
	ttl time.Duration
}

// get returns the cached body for url if a fresh file exists. Any stat or
// read problem counts as a miss.
func (c *diskCache) get(url string) ([]byte, bool) {
	path := c.path(url)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *diskCache) put(url string, body []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return eris.Wrap(err, "provider: create cache dir")
	}
	if err := os.WriteFile(c.path(url), body, 0o644); err != nil {
		return eris.Wrap(err, "provider: write cache file")
	}
	return nil
}

// path derives a stable filename from the URL: scheme dropped, every rune
// outside [a-z0-9.-] replaced with an underscore.
func (c *diskCache) path(url string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, "_")
	return filepath.Join(c.dir, "page_"+name+".html")
}
