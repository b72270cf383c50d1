package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/mission-control/internal/logger"
)

const defaultRefreshInterval = 5 * time.Minute

// run is one Start..Stop cycle of a refresh job.
type run struct {
	cancel  context.CancelFunc
	stopped chan struct{}
}

type refreshJob struct {
	svc    ConfigService
	logger *logger.Logger

	mu      sync.Mutex
	current *run
}

// NewRefreshJob returns an idle job; nothing is fetched before Start.
func NewRefreshJob(svc ConfigService, log *logger.Logger) RefreshJob {
	if log == nil {
		log = logger.Nop()
	}
	return &refreshJob{svc: svc, logger: log.WithComponent("refresh-job")}
}

// Start replaces the running cycle, if any, with one that ticks every
// interval until ctx ends or Stop is called. The first refresh happens one
// interval after Start.
func (j *refreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	j.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, stopped: make(chan struct{})}

	j.mu.Lock()
	j.current = r
	j.mu.Unlock()

	go j.loop(runCtx, interval, r.stopped)
}

// Stop ends the current cycle and returns once its goroutine is gone.
func (j *refreshJob) Stop() {
	j.mu.Lock()
	r := j.current
	j.current = nil
	j.mu.Unlock()

	if r == nil {
		return
	}
	r.cancel()
	<-r.stopped
}

func (j *refreshJob) loop(ctx context.Context, interval time.Duration, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.logger.Debug().Dur("interval", interval).Msg("refresh job running")

	failures := 0
	for {
		select {
		case <-ctx.Done():
			j.logger.Debug().Msg("refresh job stopped")
			return
		case <-ticker.C:
		}

		err := j.svc.RefreshContext(ctx)
		switch {
		case err != nil:
			failures++
			j.logger.Debug().Err(err).Int("consecutive_failures", failures).Msg("scheduled refresh failed")
		case failures > 0:
			j.logger.Info().Int("after_failures", failures).Msg("scheduled refresh recovered")
			failures = 0
		}
	}
}
