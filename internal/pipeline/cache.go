package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// FileStat identifies an uploaded document cheaply: its name and byte
// length. Content hashing is deliberately avoided so the signature can be
// computed before any file is read in full.
type FileStat struct {
	Name string
	Size int64
}

// Signature derives a stable key for a set of uploaded files. Order of the
// input does not matter; renaming a file or changing its length does.
func Signature(files []FileStat) string {
	sorted := make([]FileStat, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Size < sorted[j].Size
	})

	h := sha256.New()
	for _, f := range sorted {
		fmt.Fprintf(h, "%s\x00%d\x00", f.Name, f.Size)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ResultCache memoizes batch results keyed by file-set signature so an
// unchanged upload set skips redaction, extraction, and the model call
// entirely.
type ResultCache struct {
	c *gocache.Cache
}

func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResultCache{c: gocache.New(ttl, 10*time.Minute)}
}

func (rc *ResultCache) Get(sig string) ([]*DocumentResult, bool) {
	v, ok := rc.c.Get(sig)
	if !ok {
		return nil, false
	}
	results, ok := v.([]*DocumentResult)
	return results, ok
}

func (rc *ResultCache) Put(sig string, results []*DocumentResult) {
	rc.c.Set(sig, results, gocache.DefaultExpiration)
}
