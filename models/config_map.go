// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

var (
	// ErrEmptyDocument is returned by [ParseConfigMap] for an empty or
	// whitespace-only body.
	ErrEmptyDocument = errors.New("empty config document")

	// ErrNotJSONObject is returned by [ParseConfigMap] when the body is valid
	// JSON but not an object (array, scalar or null).
	ErrNotJSONObject = errors.New("config document is not a JSON object")

	// ErrMalformedDocument is returned by [ParseConfigMap] when the body is
	// not valid JSON.
	ErrMalformedDocument = errors.New("malformed config document")
)

// ConfigMap maps setting keys to values. A nil ConfigMap means the tier it
// represents is absent; an empty non-nil map is a present but empty tier.
//
// ConfigMaps handed out by this module are never mutated after creation;
// every refresh replaces the whole map.
type ConfigMap map[string]Value

// ParseConfigMap decodes a JSON object into a ConfigMap. Top-level entries
// whose value is not a supported scalar (null, arrays, nested objects) are
// left out and their keys are returned in skipped, sorted.
func ParseConfigMap(data []byte) (cfg ConfigMap, skipped []string, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err = dec.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, ErrNotJSONObject
	}

	cfg = make(ConfigMap, len(object))
	for key, item := range object {
		value, convErr := valueFromJSON(item)
		if convErr != nil {
			skipped = append(skipped, key)
			continue
		}
		cfg[key] = value
	}
	slices.Sort(skipped)

	return cfg, skipped, nil
}

// Get returns the value stored under key. It is safe to call on a nil map.
func (c ConfigMap) Get(key string) (Value, bool) {
	v, ok := c[key]
	return v, ok
}

// Clone returns a shallow copy. Values are immutable so a shallow copy is a
// full copy. Cloning nil yields nil.
func (c ConfigMap) Clone() ConfigMap {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Keys returns the keys in ascending order.
func (c ConfigMap) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// CanonicalJSON returns the RFC 8785 canonical JSON encoding of c.
func (c ConfigMap) CanonicalJSON() ([]byte, error) {
	if c == nil {
		c = ConfigMap{}
	}
	buf, err := json.Marshal(map[string]Value(c))
	if err != nil {
		return nil, fmt.Errorf("error marshaling config map: %w", err)
	}
	return jsoncanonicalizer.Transform(buf)
}

// Digest returns a hex SHA-256 of the canonical JSON encoding, or "" for a
// nil map. Two maps with equal content have equal digests regardless of
// insertion order; an Int and a Double holding the same number are equal.
func (c ConfigMap) Digest() string {
	if c == nil {
		return ""
	}
	buf, err := c.CanonicalJSON()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Equal reports whether c and other hold the same content. A nil map only
// equals another nil map.
func (c ConfigMap) Equal(other ConfigMap) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.Digest() == other.Digest()
}

// Interface converts c to a map of plain Go values.
func (c ConfigMap) Interface() map[string]any {
	if c == nil {
		return nil
	}
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = v.Interface()
	}
	return out
}

// Merge flattens tiers into a single map. Later tiers override earlier ones;
// nil tiers are skipped. The result is never nil.
func Merge(tiers ...ConfigMap) ConfigMap {
	out := make(ConfigMap)
	for _, tier := range tiers {
		maps.Copy(out, tier)
	}
	return out
}
