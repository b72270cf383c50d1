package missioncontrol

import (
	"github.com/MKhiriev/mission-control/internal/adapter"
	"github.com/MKhiriev/mission-control/internal/notify"
	"github.com/MKhiriev/mission-control/internal/service"
	"github.com/MKhiriev/mission-control/internal/store"
	"github.com/MKhiriev/mission-control/models"
)

type (
	// ConfigMap maps setting keys to values. Nil means "tier absent".
	ConfigMap = models.ConfigMap
	// Value is a typed setting value.
	Value = models.Value
	// Kind is the type tag of a Value.
	Kind = models.Kind
	// Scalar is the set of Go types settings can be read as.
	Scalar = models.Scalar

	// Notification is delivered to event subscribers.
	Notification = models.Notification
	// EventName identifies a refresh event.
	EventName = models.EventName

	// Delegate receives refresh outcomes as method calls.
	Delegate = notify.Delegate
	// DelegateFuncs adapts functions to Delegate.
	DelegateFuncs = notify.DelegateFuncs
	// Subscription identifies an event subscriber.
	Subscription = notify.Subscription

	// Fetcher retrieves the remote document. See [WithFetcher].
	Fetcher = adapter.Fetcher
	// CacheStore persists the last good document. See [WithCacheStore].
	CacheStore = store.CacheStore
)

// Value constructors.
var (
	Bool   = models.Bool
	Int    = models.Int
	Double = models.Double
	String = models.String
)

// Value kinds.
const (
	KindBool   = models.KindBool
	KindInt    = models.KindInt
	KindDouble = models.KindDouble
	KindString = models.KindString
)

// Refresh errors. Match with errors.Is.
var (
	ErrNoRemoteURL     = adapter.ErrNoRemoteURL
	ErrBadResponseCode = adapter.ErrBadResponseCode
	ErrInvalidData     = adapter.ErrInvalidData
	ErrClosed          = service.ErrServiceClosed
)

// Events and Notification.UserInfo keys.
const (
	DidRefreshConfig        = models.DidRefreshConfig
	DidFailRefreshingConfig = models.DidFailRefreshingConfig

	OldConfigKey = models.OldConfigKey
	NewConfigKey = models.NewConfigKey
	ErrorKey     = models.ErrorKey
)

// ParseConfigMap decodes a JSON object, e.g. a bundled defaults file, into
// a ConfigMap. Keys holding non-scalar values are dropped and returned in
// skipped.
func ParseConfigMap(data []byte) (cfg ConfigMap, skipped []string, err error) {
	return models.ParseConfigMap(data)
}
