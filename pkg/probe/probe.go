/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/luid"
	"github.com/Juice-Labs/encprobe/pkg/report"
)

const (
	ExecutableName = "encprobe-child"

	DefaultTimeout = 10 * time.Second
)

type Options struct {
	// Executable is the probe process. Defaults to ExecutableName next to
	// the running executable.
	Executable string

	// Enumerator supplies the adapters to probe. Defaults to the system
	// enumerator.
	Enumerator luid.Enumerator

	// Timeout bounds a single probe. Zero waits for the probe process
	// indefinitely.
	Timeout time.Duration

	Metrics *Metrics
}

// Prober runs the capability probe in a child process so that a driver
// crash or hang during detection never takes this process down.
type Prober struct {
	executable string
	enumerator luid.Enumerator
	timeout    time.Duration
	metrics    *Metrics
}

func New(options Options) (*Prober, error) {
	prober := &Prober{
		executable: options.Executable,
		enumerator: options.Enumerator,
		timeout:    options.Timeout,
		metrics:    options.Metrics,
	}

	if prober.executable == "" {
		executable, err := DefaultExecutable()
		if err != nil {
			return nil, err
		}

		prober.executable = executable
	}

	if prober.enumerator == nil {
		prober.enumerator = luid.NewSystemEnumerator()
	}

	return prober, nil
}

// DefaultExecutable returns the probe process path beside the running
// executable.
func DefaultExecutable() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", err
	}

	name := ExecutableName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	return filepath.Join(filepath.Dir(executable), name), nil
}

// CheckAdapters fills adapters with the capabilities of up to *count
// adapters and sets *count to the number of entries written. On any failure
// no entry is written and *count keeps its value.
func (prober *Prober) CheckAdapters(ctx context.Context, adapters []api.AdapterInfo, count *int) {
	if count == nil {
		return
	}

	capacity := *count
	if capacity > len(adapters) {
		capacity = len(adapters)
	}

	results, _, err := prober.Probe(ctx, capacity)
	if err != nil {
		return
	}

	copy(adapters, results)
	*count = len(results)
}

// CheckAdapters probes with a default Prober.
func CheckAdapters(ctx context.Context, adapters []api.AdapterInfo, count *int) {
	prober, err := New(Options{Timeout: DefaultTimeout})
	if err != nil {
		logger.Warningf("probe: unable to create prober, %v", err)
		return
	}

	prober.CheckAdapters(ctx, adapters, count)
}

// Probe returns at most capacity capability records, entry i describing
// the i-th enumerated adapter, together with the identifiers they were
// probed for. Failures are logged and returned, never retried.
func (prober *Prober) Probe(ctx context.Context, capacity int) ([]api.AdapterInfo, []luid.Luid, error) {
	return prober.attempt(ctx, uuid.NewString(), capacity)
}

// Result probes like Probe and returns the outcome in reporting form. The
// per-adapter capability gauges are replaced with the new records.
func (prober *Prober) Result(ctx context.Context, capacity int) api.ProbeResult {
	id := uuid.NewString()

	result := api.ProbeResult{
		Id:       id,
		Adapters: []api.Adapter{},
	}

	adapters, ids, err := prober.attempt(ctx, id, capacity)
	if err != nil {
		result.Error = err.Error()
	}

	for index, adapter := range adapters {
		result.Adapters = append(result.Adapters, api.Adapter{
			Index:       index,
			Luid:        ids[index].String(),
			AdapterInfo: adapter,
		})
	}

	prober.metrics.SetAdapters(result.Adapters)
	return result
}

func (prober *Prober) attempt(ctx context.Context, id string, capacity int) ([]api.AdapterInfo, []luid.Luid, error) {
	start := time.Now()

	adapters, ids, err := prober.probe(ctx, id, capacity)
	prober.metrics.observe(err, time.Since(start), len(adapters))
	if err != nil {
		logger.Warningf("probe %s: %v", id, err)
		return nil, nil, err
	}

	logger.Infof("probe %s: %d adapter(s) reported in %s", id, len(adapters), time.Since(start).Round(time.Millisecond))
	return adapters, ids[:len(adapters)], nil
}

func (prober *Prober) probe(ctx context.Context, id string, capacity int) ([]api.AdapterInfo, []luid.Luid, error) {
	command, ids, err := CommandFromEnumerator(prober.executable, prober.enumerator)
	if err != nil {
		return nil, nil, err
	}

	if prober.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, prober.timeout)
		defer cancel()
	}

	logger.Debugf("probe %s: launching %s", id, command)

	process, err := launch(ctx, command)
	if err != nil {
		return nil, nil, err
	}
	defer process.close()

	output, err := process.drain()
	logger.Debugf("probe %s: read %d byte(s)", id, len(output))

	parsed, err := readReport(ctx, output, err)
	if err != nil {
		return nil, nil, err
	}

	return merge(id, parsed, ids, capacity), ids, nil
}

// readReport turns the drained output into a report. A killed child leaves
// a truncated report behind, which must not be trusted even if it happens
// to parse. Output that ended before ctx did is complete, however soon the
// deadline follows.
func readReport(ctx context.Context, output []byte, drainErr error) (*report.Report, error) {
	if errors.Is(drainErr, errInterrupted) {
		return nil, contextError(ctx.Err())
	} else if drainErr != nil {
		return nil, ErrRead.Wrap(drainErr)
	}

	parsed, err := report.Parse(output)
	if errors.Is(err, report.ErrEmpty) {
		return nil, ErrEmptyOutput
	} else if err != nil {
		return nil, ErrParse.Wrap(err)
	}

	if message := parsed.Error(); message != "" {
		return nil, ErrReported.Wrapf("%s", message)
	}

	return parsed, nil
}

// merge copies report sections in order, stopping at capacity, at the
// number of identifiers passed, or at the first section that echoes a
// different identifier than the one at its position.
func merge(id string, parsed *report.Report, ids []luid.Luid, capacity int) []api.AdapterInfo {
	count := parsed.NumSections()
	if count > capacity {
		count = max(capacity, 0)
	}

	if count > len(ids) {
		logger.Warningf("probe %s: %d section(s) reported for %d adapter(s)", id, parsed.NumSections(), len(ids))
		count = len(ids)
	}

	adapters := make([]api.AdapterInfo, 0, count)
	for index := 0; index < count; index++ {
		echoed, found, err := parsed.Luid(index)
		if err != nil || (found && echoed != ids[index]) {
			logger.Warningf("probe %s: section %d does not belong to adapter %s, ignoring it and the rest", id, index, ids[index])
			break
		}

		adapter, _ := parsed.Adapter(index)
		adapters = append(adapters, adapter)
	}

	return adapters
}
