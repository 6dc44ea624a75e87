/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package app

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Juice-Labs/encprobe/cmd/internal/build"
	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/luid"
	"github.com/Juice-Labs/encprobe/pkg/probe"
	"github.com/Juice-Labs/encprobe/pkg/server"
	"github.com/Juice-Labs/encprobe/pkg/task"
	"github.com/Juice-Labs/encprobe/pkg/utilities"
)

var (
	ErrInvalidFormat = errors.New("app: unknown output format")
	ErrInvalidConfig = errors.New("app: invalid configuration")
)

type App struct {
	Hostname string

	// Server is nil unless an address was configured.
	Server *server.Server

	config Config

	prober   *probe.Prober
	metrics  *probe.Metrics
	registry *prometheus.Registry

	// One probe process at a time.
	probeMutex sync.Mutex

	last *utilities.ConcurrentVariable[api.ProbeResult]

	historyMutex sync.Mutex
	history      *orderedmap.OrderedMap[string, api.ProbeResult]
}

func NewApp(config Config) (*App, error) {
	if config.Format != FormatJson && config.Format != FormatTable {
		return nil, ErrInvalidFormat.Wrapf("%q", config.Format)
	}

	if config.MaxAdapters < 0 {
		return nil, ErrInvalidConfig.Wrapf("max-adapters must not be negative, got %d", config.MaxAdapters)
	}

	if config.HistorySize < 1 {
		config.HistorySize = 1
	}

	var enumerator luid.Enumerator
	if len(config.Adapters) > 0 {
		ids, err := luid.ParseAll(config.Adapters)
		if err != nil {
			return nil, ErrInvalidConfig.Wrap(err)
		}

		enumerator = luid.Static(ids)
	}

	metrics := probe.NewMetrics()

	registry := prometheus.NewRegistry()
	err := registry.Register(metrics)
	if err != nil {
		return nil, err
	}

	prober, err := probe.New(probe.Options{
		Executable: config.Executable,
		Enumerator: enumerator,
		Timeout:    config.Timeout,
		Metrics:    metrics,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		config:   config,
		prober:   prober,
		metrics:  metrics,
		registry: registry,
		last:     utilities.NewConcurrentVariable(api.ProbeResult{Adapters: []api.Adapter{}}),
		history:  orderedmap.New[string, api.ProbeResult](),
	}

	app.Hostname, err = os.Hostname()
	if err != nil {
		logger.Warningf("Unable to get hostname, %v", err)
	}

	if config.Address != "" {
		app.Server, err = server.NewServer(config.Address, config.AllowedOrigins)
		if err != nil {
			return nil, err
		}

		app.initializeEndpoints()
	}

	return app, nil
}

// Probe runs one probe and records its result.
func (app *App) Probe(ctx context.Context) api.ProbeResult {
	app.probeMutex.Lock()
	defer app.probeMutex.Unlock()

	result := app.prober.Result(ctx, app.config.MaxAdapters)

	app.last.Set(result)

	app.historyMutex.Lock()
	app.history.Set(result.Id, result)
	for app.history.Len() > app.config.HistorySize {
		app.history.Delete(app.history.Oldest().Key)
	}
	app.historyMutex.Unlock()

	if app.config.MetricsTextfile != "" {
		err := prometheus.WriteToTextfile(app.config.MetricsTextfile, app.registry)
		if err != nil {
			logger.Warningf("Unable to write metrics to %s, %v", app.config.MetricsTextfile, err)
		}
	}

	return result
}

func (app *App) Last() api.ProbeResult {
	return app.last.Get()
}

func (app *App) Lookup(id string) (api.ProbeResult, bool) {
	app.historyMutex.Lock()
	defer app.historyMutex.Unlock()

	return app.history.Get(id)
}

// Run probes once and prints the result, or serves results until the group
// is canceled when an address was configured.
func (app *App) Run(group task.Group) error {
	result := app.Probe(group.Ctx())

	if app.Server == nil {
		return app.Write(os.Stdout, result)
	}

	if app.config.ProbeInterval > 0 {
		group.GoFn("Reprobe", app.reprobe)
	}

	return app.Server.Run(group)
}

func (app *App) reprobe(group task.Group) error {
	ticker := time.NewTicker(app.config.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-group.Ctx().Done():
			return nil

		case <-ticker.C:
			result := app.Probe(group.Ctx())
			if result.Error != "" {
				logger.Debugf("Reprobe %s failed, %s", result.Id, result.Error)
			}
		}
	}
}

func (app *App) status() api.Status {
	return api.Status{
		State:     "Active",
		Version:   build.Version,
		Hostname:  app.Hostname,
		LastProbe: app.Last().Id,
	}
}
