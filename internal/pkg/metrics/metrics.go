/*
Copyright 2025 The Fleet Catalog Manager contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics provides Prometheus metrics for the sync process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the registry holding all sync metrics.
var Registry = prometheus.NewRegistry()

var (
	// SyncPasses counts completed sync passes by result ("success" or "error").
	SyncPasses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcatalog_sync_passes_total",
			Help: "Number of completed sync passes by result.",
		},
		[]string{"result"},
	)

	// SyncDuration observes the wall-clock duration of a full sync pass.
	SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetcatalog_sync_duration_seconds",
			Help:    "Duration of a full sync pass.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// EntitiesEmitted reports the size of the last emitted snapshot by kind.
	EntitiesEmitted = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleetcatalog_entities_emitted",
			Help: "Entities in the last emitted full snapshot, by kind.",
		},
		[]string{"kind"},
	)

	// DuplicatesDropped counts entities dropped by the first-wins dedup.
	DuplicatesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcatalog_duplicate_entities_dropped_total",
			Help: "Entities dropped because an earlier entity claimed the same key.",
		},
	)

	// UpstreamFailures counts fail-soft upstream list/get failures by call.
	UpstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcatalog_upstream_failures_total",
			Help: "Upstream collaborator failures recovered as empty results.",
		},
		[]string{"call"},
	)
)

var initialized = false

// Init registers all collectors with the registry. Call once at startup.
func Init() error {
	if initialized {
		return nil
	}

	runtimeCollectors := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	syncCollectors := []prometheus.Collector{
		SyncPasses,
		SyncDuration,
		EntitiesEmitted,
		DuplicatesDropped,
		UpstreamFailures,
	}

	for _, c := range append(runtimeCollectors, syncCollectors...) {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}

	initialized = true
	return nil
}

// MustInit registers all collectors and panics on error.
func MustInit() {
	if err := Init(); err != nil {
		panic("failed to initialize metrics: " + err.Error())
	}
}
