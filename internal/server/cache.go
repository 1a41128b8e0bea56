package server

import (
	"github.com/dgraph-io/ristretto/v2"
)

// viewCache memoizes encoded view bodies. Each body costs 1, so the cache
// holds at most maxEntries responses.
type viewCache struct {
	c *ristretto.Cache[string, []byte]
}

func newViewCache(maxEntries int64) (*viewCache, error) {
	if maxEntries <= 0 {
		return &viewCache{}, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &viewCache{c: c}, nil
}

func (v *viewCache) get(key string) ([]byte, bool) {
	if v.c == nil {
		return nil, false
	}
	return v.c.Get(key)
}

func (v *viewCache) set(key string, body []byte) {
	if v.c == nil {
		return
	}
	if v.c.Set(key, body, 1) {
		// make the entry visible to the next request
		v.c.Wait()
	}
}

func (v *viewCache) close() {
	if v.c != nil {
		v.c.Close()
	}
}
