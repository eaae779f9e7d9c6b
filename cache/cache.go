package cache

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache is the keyed store injected into request handlers to avoid
// recomputing identical requests inside a time window. The core stays
// stateless; tests inject a map-backed fake.
type ResponseCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
}

// Memory is the in-process implementation.
type Memory struct {
	store *gocache.Cache
}

func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(key string) (interface{}, bool) {
	return m.store.Get(key)
}

func (m *Memory) Set(key string, value interface{}, ttl time.Duration) {
	m.store.Set(key, value, ttl)
}

// Key builds a stable cache key from a name and request parameters: the
// params are serialized in sorted order and hashed, so equivalent requests
// map to the same entry regardless of parameter order.
func Key(name string, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var blob strings.Builder
	for _, k := range keys {
		v, _ := json.Marshal(params[k])
		blob.WriteString(k)
		blob.WriteByte('=')
		blob.Write(v)
		blob.WriteByte(';')
	}
	return fmt.Sprintf("%s:%x", name, sha1.Sum([]byte(blob.String())))
}
