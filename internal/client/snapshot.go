package client

import (
	"time"

	"github.com/MKhiriev/mission-control/models"
)

// Snapshot is the dump command output.
type Snapshot struct {
	RemoteURL   string           `json:"remote_url,omitempty"`
	RefreshDate *time.Time       `json:"refresh_date,omitempty"`
	CacheDate   *time.Time       `json:"cache_date,omitempty"`
	Config      models.ConfigMap `json:"config"`
}

// event is one line of watch output.
type event struct {
	Event models.EventName `json:"event"`
	At    time.Time        `json:"at"`
	Keys  int              `json:"keys,omitempty"`
	Error string           `json:"error,omitempty"`
}

func datePtr(t time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &t
}
