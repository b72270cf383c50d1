package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/mission-control/internal/adapter"
	"github.com/MKhiriev/mission-control/internal/config"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/metrics"
	"github.com/MKhiriev/mission-control/internal/notify"
	"github.com/MKhiriev/mission-control/internal/service"
	"github.com/MKhiriev/mission-control/internal/store"
	"github.com/MKhiriev/mission-control/internal/workers"
	"github.com/MKhiriev/mission-control/models"
)

// shutdownTimeout bounds the metrics exporter shutdown.
const shutdownTimeout = 5 * time.Second

// App is the [Client] used by the missioncontrol commands.
type App struct {
	cfg      *config.ClientConfig
	local    models.ConfigMap
	svc      service.ConfigService
	storages *store.Storages
	exporter *metrics.Exporter
	logger   *logger.Logger
}

// NewApp opens the cache database and wires the config service. The metrics
// exporter is created only when cfg.MetricsAddress is set; it serves only
// while [App.Watch] runs.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	local, err := loadLocalDefaults(cfg.LocalDefaultsPath, log)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.CacheDSN, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	var (
		recorder service.Recorder
		exporter *metrics.Exporter
	)
	if cfg.MetricsAddress != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create metrics recorder: %w", err)
		}
		recorder = rec
		exporter = metrics.NewExporter(cfg.MetricsAddress, reg, log)
	}

	fetcher := adapter.NewHTTPFetcher(cfg.RequestTimeout, log)
	svc := service.NewConfigService(fetcher, storages.ConfigCache, notify.NewHub(log), recorder, log)

	return &App{
		cfg:      cfg,
		local:    local,
		svc:      svc,
		storages: storages,
		exporter: exporter,
		logger:   log,
	}, nil
}

// loadLocalDefaults parses the local tier file. An empty path means no
// local tier.
func loadLocalDefaults(path string, log *logger.Logger) (models.ConfigMap, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local defaults: %w", err)
	}

	local, skipped, err := models.ParseConfigMap(data)
	if err != nil {
		return nil, fmt.Errorf("parse local defaults %s: %w", path, err)
	}
	if len(skipped) > 0 {
		log.Warn().Strs("skipped_keys", skipped).Str("path", path).Msg("local defaults have unsupported values")
	}

	return local, nil
}

func (a *App) Resolve(ctx context.Context) error {
	a.svc.Launch(a.local, a.cfg.RemoteURL)
	if a.cfg.RemoteURL == "" {
		return nil
	}
	// joins the refresh started by Launch
	return a.svc.RefreshContext(ctx)
}

func (a *App) Lookup(key string, kind models.Kind) (models.Value, bool) {
	return a.svc.Lookup(key, kind)
}

func (a *App) Snapshot() Snapshot {
	refreshed, refreshedOK := a.svc.RefreshDate()
	cached, cachedOK := a.svc.CacheDate()

	return Snapshot{
		RemoteURL:   a.svc.RemoteURL(),
		RefreshDate: datePtr(refreshed, refreshedOK),
		CacheDate:   datePtr(cached, cachedOK),
		Config:      a.svc.Config(),
	}
}

func (a *App) Watch(ctx context.Context, out io.Writer) error {
	if a.cfg.RemoteURL == "" {
		return adapter.ErrNoRemoteURL
	}

	var mu sync.Mutex
	enc := json.NewEncoder(out)
	write := func(e event) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(e); err != nil {
			a.logger.Err(err).Msg("error writing event")
		}
	}

	refreshed := a.svc.Subscribe(models.DidRefreshConfig, func(n models.Notification) {
		write(event{Event: n.Name, At: n.At, Keys: len(n.New)})
	})
	failed := a.svc.Subscribe(models.DidFailRefreshingConfig, func(n models.Notification) {
		write(event{Event: n.Name, At: n.At, Error: n.Error})
	})
	defer a.svc.Unsubscribe(refreshed.ID)
	defer a.svc.Unsubscribe(failed.ID)

	a.svc.Launch(a.local, a.cfg.RemoteURL)

	ws := []workers.Worker{workers.WorkerFunc(a.runRefreshJob)}
	if a.exporter != nil {
		ws = append(ws, workers.WorkerFunc(a.runExporter))
	}

	return workers.New(ws...).Run(ctx)
}

func (a *App) runRefreshJob(ctx context.Context) error {
	job := service.NewRefreshJob(a.svc, a.logger)
	job.Start(ctx, a.cfg.RefreshInterval)
	<-ctx.Done()
	job.Stop()
	return nil
}

func (a *App) runExporter(ctx context.Context) error {
	a.exporter.Start()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.exporter.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stop metrics exporter: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	a.svc.Close()
	<-a.svc.Done()
	return a.storages.Close()
}
