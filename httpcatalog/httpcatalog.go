// Package httpcatalog implements catalog.Catalog by fetching the
// package index from a remote endpoint and caching the decoded body on
// disk with a modification-time TTL. Grounded on original_source's
// RemoteEndpoint (core/http.rs): load_from_disk checks a cached file's
// mtime against a timeout before load_from_remote re-fetches. The HTTP
// client is github.com/hashicorp/go-retryablehttp (as GoogleCloudPlatform-buildpacks
// already uses for its own fetches), and the cache file is guarded by
// an advisory github.com/theckman/go-flock lock so two Baryon
// invocations racing on the same cache path don't tear each other's
// writes — the same dependency the teacher vendors to guard a shared
// GOPATH cache.
package httpcatalog

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/theckman/go-flock"

	"github.com/scztt/baryon/catalog"
)

// wireDoc is the JSON shape served by the index endpoint: a flat list
// of packages, each with its releases and per-release dependency specs.
// The list elements are catalog.PackageDesc values themselves, so the
// wire shape of a package follows that type's fields.
type wireDoc struct {
	Packages []catalog.PackageDesc `json:"packages"`
}

// Catalog fetches the package index from URL over HTTP, retrying
// transient failures, and caches the decoded response on disk at
// CachePath. A cached response younger than CacheTimeout is served
// without a network round trip.
type Catalog struct {
	URL          string
	CachePath    string
	CacheTimeout time.Duration

	// Client defaults to a retryablehttp client with its stock retry
	// policy if nil.
	Client *retryablehttp.Client
}

// New returns a Catalog fetching url, caching at cachePath with the
// given TTL, using a default retryablehttp client.
func New(url, cachePath string, cacheTimeout time.Duration) *Catalog {
	client := retryablehttp.NewClient()
	client.Logger = nil // retry logging is off; the teacher's own retry clients stay quiet by default
	return &Catalog{URL: url, CachePath: cachePath, CacheTimeout: cacheTimeout, Client: client}
}

// Packages implements catalog.Catalog: it serves a fresh on-disk cache
// if one exists, or fetches and re-caches otherwise.
func (c *Catalog) Packages() ([]catalog.PackageDesc, error) {
	if doc, ok := c.loadFromDisk(); ok {
		return doc.Packages, nil
	}
	return c.loadFromRemote()
}

// loadFromDisk returns the cached document and true if CachePath exists
// and was modified within CacheTimeout.
func (c *Catalog) loadFromDisk() (wireDoc, bool) {
	info, err := os.Stat(c.CachePath)
	if err != nil {
		return wireDoc{}, false
	}
	if time.Since(info.ModTime()) > c.CacheTimeout {
		return wireDoc{}, false
	}

	raw, err := os.ReadFile(c.CachePath)
	if err != nil {
		return wireDoc{}, false
	}

	var doc wireDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return wireDoc{}, false
	}
	return doc, true
}

// loadFromRemote fetches the index over HTTP and writes it back to the
// cache path under an advisory file lock, so a concurrent fetch racing
// on the same cache file can't interleave writes.
func (c *Catalog) loadFromRemote() ([]catalog.PackageDesc, error) {
	client := c.Client
	if client == nil {
		client = retryablehttp.NewClient()
	}
	resp, err := client.Get(c.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "httpcatalog: fetch %s", c.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("httpcatalog: fetch %s: unexpected status %s", c.URL, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "httpcatalog: read response body")
	}

	var doc wireDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "httpcatalog: decode response body")
	}

	if err := c.writeCache(raw); err != nil {
		return nil, errors.Wrap(err, "httpcatalog: write cache")
	}

	return doc.Packages, nil
}

// writeCache writes raw to CachePath under an advisory lock on
// CachePath+".lock". A failure to acquire the lock is not fatal — the
// fetch already succeeded, so the caller can proceed even if some other
// process is mid-write; the next Packages call simply re-fetches.
func (c *Catalog) writeCache(raw []byte) error {
	lock := flock.NewFlock(c.CachePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil || !locked {
		return nil
	}
	defer lock.Unlock()

	return os.WriteFile(c.CachePath, raw, 0o644)
}
