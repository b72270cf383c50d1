package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/mission-control/models"
)

// cachedValue records the kind next to the value because JSON alone cannot
// tell Double(2) from Int(2).
type cachedValue struct {
	Kind  string       `json:"kind"`
	Value models.Value `json:"value"`
}

func encodePayload(cfg models.ConfigMap) ([]byte, error) {
	entries := make(map[string]cachedValue, len(cfg))
	for key, value := range cfg {
		entries[key] = cachedValue{Kind: value.Kind().String(), Value: value}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("error encoding cache payload: %w", err)
	}
	return payload, nil
}

func decodePayload(payload []byte) (models.ConfigMap, error) {
	var entries map[string]cachedValue
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupted, err)
	}

	cfg := make(models.ConfigMap, len(entries))
	for key, entry := range entries {
		kind, err := models.ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrCacheCorrupted, key, err)
		}

		value := entry.Value
		if kind == models.KindDouble && value.Kind() == models.KindInt {
			f, _ := value.AsDouble()
			value = models.Double(f)
		}
		if value.Kind() != kind {
			return nil, fmt.Errorf("%w: key %q: stored %s, want %s", ErrCacheCorrupted, key, value.Kind(), kind)
		}
		cfg[key] = value
	}

	return cfg, nil
}
