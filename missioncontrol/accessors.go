package missioncontrol

import "github.com/MKhiriev/mission-control/internal/service"

// Get reads key as T from c, or returns fallback.
func Get[T Scalar](c *Client, key string, fallback T) T {
	return service.Lookup(c.svc, key, fallback)
}

// GetForce refreshes, then hands completion the value of key. If the refresh
// fails completion receives fallback, even when a cached or local value
// exists.
func GetForce[T Scalar](c *Client, key string, fallback T, completion func(T)) {
	service.RefreshForced(c.svc, key, fallback, completion)
}

func (c *Client) Bool(key string, fallback bool) bool { return Get(c, key, fallback) }

func (c *Client) Int(key string, fallback int) int { return Get(c, key, fallback) }

// Double also accepts integer values.
func (c *Client) Double(key string, fallback float64) float64 { return Get(c, key, fallback) }

func (c *Client) String(key string, fallback string) string { return Get(c, key, fallback) }

func (c *Client) BoolForce(key string, fallback bool, completion func(bool)) {
	GetForce(c, key, fallback, completion)
}

func (c *Client) IntForce(key string, fallback int, completion func(int)) {
	GetForce(c, key, fallback, completion)
}

func (c *Client) DoubleForce(key string, fallback float64, completion func(float64)) {
	GetForce(c, key, fallback, completion)
}

func (c *Client) StringForce(key string, fallback string, completion func(string)) {
	GetForce(c, key, fallback, completion)
}
