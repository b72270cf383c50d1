package service

import "time"

// NopRecorder discards all telemetry.
type NopRecorder struct{}

func (NopRecorder) ObserveRefresh(string, time.Duration) {}

func (NopRecorder) SetConfigKeys(int) {}
