// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventName identifies a broadcast event emitted after a refresh attempt.
type EventName string

const (
	// DidRefreshConfig is emitted once per successful refresh, after the new
	// remote config has been applied.
	DidRefreshConfig EventName = "MissionControl.DidRefreshConfig"

	// DidFailRefreshingConfig is emitted once per failed refresh. State is
	// left untouched when it fires.
	DidFailRefreshingConfig EventName = "MissionControl.DidFailRefreshingConfig"
)

// Keys of the map returned by [Notification.UserInfo].
const (
	OldConfigKey = "MissionControl.OldConfig"
	NewConfigKey = "MissionControl.NewConfig"
	ErrorKey     = "Error"
)

// Notification is the payload delivered to subscribers of an [EventName].
type Notification struct {
	// Name is the event that fired.
	Name EventName

	// Old is the remote config before the refresh. Nil on the first
	// successful refresh and on failures.
	Old ConfigMap

	// New is the remote config after the refresh. Nil on failures.
	New ConfigMap

	// Err is the refresh error for DidFailRefreshingConfig, nil otherwise.
	Err error

	// Error is Err rendered as a string ("" when Err is nil).
	Error string

	// At is the time the notification was posted.
	At time.Time
}

// UserInfo renders the notification as a loosely typed dictionary with the
// documented keys. It returns nil when there is neither a config nor an error
// to report.
func (n Notification) UserInfo() map[string]any {
	if n.Old == nil && n.New == nil && n.Error == "" {
		return nil
	}

	info := make(map[string]any, 2)
	if n.Old != nil {
		info[OldConfigKey] = n.Old
	}
	if n.New != nil {
		info[NewConfigKey] = n.New
	}
	if n.Error != "" {
		info[ErrorKey] = n.Error
	}
	return info
}
