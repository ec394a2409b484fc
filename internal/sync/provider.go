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

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/fleetclient"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/metrics"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/rancher"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
)

// ErrNotConnected is returned by Run before Connect has been called.
var ErrNotConnected = errors.New("provider is not connected to a catalog")

// ClusterClients bundles the upstream clients of one management cluster.
type ClusterClients struct {
	Fleet    fleetclient.Interface
	Topology rancher.TopologyClient
}

// ClientFactory builds the upstream clients for one configured management
// cluster. Tests substitute fakes here.
type ClientFactory func(cluster *config.ClusterConfig) (ClusterClients, error)

// DefaultClientFactory builds real clients from the cluster configuration.
func DefaultClientFactory(cluster *config.ClusterConfig) (ClusterClients, error) {
	fleet, err := fleetclient.New(cluster)
	if err != nil {
		return ClusterClients{}, fmt.Errorf("failed to create fleet client: %w", err)
	}
	topology, err := rancher.New(cluster)
	if err != nil {
		return ClusterClients{}, fmt.Errorf("failed to create topology client: %w", err)
	}
	return ClusterClients{Fleet: fleet, Topology: topology}, nil
}

// Provider drives full reconciliation passes over all configured management
// clusters and emits the result as one full-snapshot mutation per pass.
type Provider struct {
	log      *zap.SugaredLogger
	cfg      *config.Config
	limit    int
	fetchers []*clusterFetcher

	mu   sync.Mutex
	conn Connection
}

// New constructs a provider, building clients for every configured cluster
// up front so misconfiguration surfaces before the first pass.
func New(log *zap.SugaredLogger, cfg *config.Config, factory ClientFactory) (*Provider, error) {
	p := &Provider{
		log:   log,
		cfg:   cfg,
		limit: cfg.Concurrency,
	}
	// Callers constructing a Config by hand may skip the defaulting done
	// during load; a zero limit would stall the errgroup.
	if p.limit <= 0 {
		p.limit = config.DefaultConcurrency
	}

	for i := range cfg.Clusters {
		cluster := &cfg.Clusters[i]
		clients, err := factory(cluster)
		if err != nil {
			return nil, fmt.Errorf("cluster %q: %w", cluster.Name, err)
		}
		p.fetchers = append(p.fetchers, &clusterFetcher{
			log:      log.With("cluster", cluster.Name),
			cfg:      cluster,
			fleet:    clients.Fleet,
			topology: clients.Topology,
		})
	}

	return p, nil
}

// Connect attaches the catalog connection the provider emits through.
func (p *Provider) Connect(conn Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn = conn
}

// Run executes one full reconciliation pass: fan out over all clusters
// under the concurrency cap, merge batches in configuration order,
// deduplicate, then emit a single full-snapshot mutation. A failed pass
// emits nothing, leaving the previous catalog state untouched.
func (p *Provider) Run(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return ErrNotConnected
	}

	start := time.Now()

	entities, err := p.collect(ctx)
	if err != nil {
		metrics.SyncPasses.WithLabelValues("error").Inc()
		return err
	}

	mutation := catalog.NewFullMutation(entities)
	if err := p.conn.ApplyMutation(ctx, mutation); err != nil {
		metrics.SyncPasses.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to apply mutation: %w", err)
	}

	p.observe(entities, time.Since(start))
	metrics.SyncPasses.WithLabelValues("success").Inc()
	p.log.Infow("Sync pass complete", "entities", len(entities), "duration", time.Since(start))

	return nil
}

// collect fans out over the configured clusters and returns the merged,
// deduplicated entity set. Batches are merged in configuration order so
// first-wins deduplication stays deterministic despite the concurrency.
func (p *Provider) collect(ctx context.Context) ([]catalog.DeferredEntity, error) {
	batches := make([][]catalog.DeferredEntity, len(p.fetchers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.limit)

	for i, fetcher := range p.fetchers {
		group.Go(func() error {
			batch, err := fetcher.fetch(groupCtx)
			if err != nil {
				return fmt.Errorf("cluster %q: %w", fetcher.cfg.Name, err)
			}
			batches[i] = batch
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return p.dedupe(batches), nil
}

// dedupe flattens the per-cluster batches, keeping the first entity seen
// for every (kind, namespace, name) key.
func (p *Provider) dedupe(batches [][]catalog.DeferredEntity) []catalog.DeferredEntity {
	seen := map[string]string{}
	var merged []catalog.DeferredEntity

	for _, batch := range batches {
		for _, deferred := range batch {
			key := deferred.Entity.Key()
			if first, ok := seen[key]; ok {
				if first != deferred.Location {
					p.log.Warnw("Dropping duplicate entity emitted by multiple clusters", "entity", key, "kept", first, "dropped", deferred.Location)
				} else {
					p.log.Debugw("Dropping duplicate entity", "entity", key)
				}
				metrics.DuplicatesDropped.Inc()
				continue
			}
			seen[key] = deferred.Location
			merged = append(merged, deferred)
		}
	}

	return merged
}

func (p *Provider) observe(entities []catalog.DeferredEntity, elapsed time.Duration) {
	counts := map[string]int{}
	for _, deferred := range entities {
		counts[deferred.Entity.Kind]++
	}
	metrics.EntitiesEmitted.Reset()
	for kind, count := range counts {
		metrics.EntitiesEmitted.WithLabelValues(kind).Set(float64(count))
	}
	metrics.SyncDuration.Observe(elapsed.Seconds())
}
