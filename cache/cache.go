package cache

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Cache maps request signatures to previously observed responses. It is a
// best-effort optimization: lookups degrade to a miss on any failure, writes
// are dropped on failure, and neither path ever surfaces an error to the
// caller.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
	}
}

// Get returns the entry stored under the signature, or absent. A missing,
// unreadable or corrupted record is reported as a miss.
func (c *Cache) Get(sig string) (Entry, bool) {
	raw, err := c.store.Get(sanitize(sig))
	if err != nil {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		zap.S().Debugf("evicting corrupted cache record for %s: %s", sig, err)
		_ = c.store.Delete(sanitize(sig))
		return Entry{}, false
	}

	return entry, true
}

// Put persists the entry under the signature. The write error is returned so
// the caller can decide whether a failed write matters; the client layer
// ignores it.
func (c *Cache) Put(sig string, entry Entry) error {
	entry.Signature = sig
	entry.UpdatedAt = time.Now()

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.store.Set(sanitize(sig), raw)
}

// Clear removes every persisted record. Clearing an empty cache succeeds.
func (c *Cache) Clear() error {
	return c.store.Purge()
}

// Info reports the cache directory, record count and total byte size. It never
// fails; on any underlying error it returns whatever could be gathered.
func (c *Cache) Info() Stats {
	stats, err := c.store.Stats()
	if err != nil {
		zap.S().Debugf("failed to gather cache stats: %s", err)
	}
	return stats
}

// sanitize turns a signature into a filesystem-safe storage key. Signatures
// are hex digests in practice, so this is usually the identity; anything
// unexpected is mapped to underscores deterministically.
func sanitize(sig string) string {
	out := []byte(sig)
	for i, b := range out {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
