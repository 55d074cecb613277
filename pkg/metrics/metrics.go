// Package metrics stores local application metrics in an embedded
// time-series storage under the configured workdir.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

var (
	mu       sync.Mutex
	storage  tstorage.Storage
	counters = map[string]float64{}
)

// InitMetrics opens the embedded time-series storage. Safe to skip in tests;
// all writers become no-ops while the storage is unset.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

func insert(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// SetGauge records an instantaneous value for the named metric
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// IncrCounter adds delta to the named cumulative counter and records it
func IncrCounter(name string, delta int64) {
	mu.Lock()
	counters[name] += float64(delta)
	v := counters[name]
	mu.Unlock()
	insert(name, v)
}

// Select returns the stored points of a metric within [start, end]
func Select(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return nil, nil
	}
	return s.Select(name, nil, start, end)
}

// Close flushes and closes the storage
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
