package signature

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Mode controls whether the route participates in the digest.
type Mode int

const (
	// Loose derives the signature from the payload content only. Two routes
	// submitting identical payloads produce the same signature, so they share
	// one cache entry. This keeps cache entries valid across route renames.
	Loose Mode = iota
	// Strict folds the route into the digest, giving every route its own
	// cache namespace.
	Strict
)

// SerializationError wraps a payload that cannot be canonicalized to JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("payload is not serializable: %s", e.Err.Error())
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

type Generator struct {
	mode Mode
}

func New() *Generator {
	return &Generator{mode: Loose}
}

func (g *Generator) WithMode(mode Mode) *Generator {
	g.mode = mode
	return g
}

// Sign derives a deterministic signature for a route and payload. The payload
// is canonicalized (object keys sorted, numbers kept verbatim) before hashing,
// so structurally identical payloads built in any key order produce
// byte-identical signatures across runs. A nil payload hashes as an empty
// object.
func (g *Generator) Sign(route string, payload any) (string, error) {
	canonical, err := Canonicalize(payload)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	if g.mode == Strict {
		h.Write([]byte(route))
		h.Write([]byte{'\n'})
	}
	h.Write(canonical)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Canonicalize renders a payload as canonical JSON text: object keys sorted,
// no insignificant whitespace, numbers preserved as written. Any
// JSON-serializable value succeeds; anything else returns a
// SerializationError.
func Canonicalize(payload any) ([]byte, error) {
	if payload == nil {
		return []byte("{}"), nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	// Re-decode into generic values and re-encode. Map keys come out sorted,
	// which normalizes away field order for struct-built payloads, and
	// json.Number keeps the original number text intact.
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, &SerializationError{Err: err}
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	return canonical, nil
}
