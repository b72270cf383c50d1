package service

import "github.com/MKhiriev/mission-control/models"

// Lookup reads key as T, returning fallback when no tier holds a value of
// that type.
func Lookup[T models.Scalar](svc ConfigService, key string, fallback T) T {
	v, ok := svc.Lookup(key, models.KindFor[T]())
	if !ok {
		return fallback
	}

	out, ok := models.Extract[T](v)
	if !ok {
		return fallback
	}
	return out
}

// RefreshForced refreshes svc and hands completion the value of key. After a
// failed refresh completion receives fallback unchanged.
func RefreshForced[T models.Scalar](svc ConfigService, key string, fallback T, completion func(T)) {
	svc.Refresh(func(err error) {
		if completion == nil {
			return
		}
		if err != nil {
			completion(fallback)
			return
		}
		completion(Lookup(svc, key, fallback))
	})
}
