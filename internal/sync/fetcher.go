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

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/fleetclient"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/metrics"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/rancher"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// clusterFetcher walks one management cluster top-down and maps everything
// it finds into catalog entities. Upstream list failures are logged and
// skipped so one broken namespace or repository never loses the rest of
// the cluster's batch.
type clusterFetcher struct {
	log      *zap.SugaredLogger
	cfg      *config.ClusterConfig
	fleet    fleetclient.Interface
	topology rancher.TopologyClient
}

// fetch produces the full entity batch of one management cluster. The only
// hard failure is context cancellation.
func (f *clusterFetcher) fetch(ctx context.Context) ([]catalog.DeferredEntity, error) {
	topo := CollectTopology(ctx, f.log, f.topology)

	location := locationFor(f.cfg)
	mc := &MapperContext{Cluster: f.cfg, Location: location}

	var batch []catalog.DeferredEntity
	add := func(e catalog.Entity) {
		batch = append(batch, catalog.DeferredEntity{Entity: e, Location: location})
	}

	add(mapDomain(mc))

	f.registerClusters(ctx, topo)

	for _, ns := range f.cfg.Namespaces {
		selector, err := namespaceSelector(ns)
		if err != nil {
			f.log.Warnw("Invalid namespace label selector, scanning unfiltered", "namespace", ns.Name, zap.Error(err))
			selector = labels.Everything()
		}

		repos, err := f.fleet.ListGitRepos(ctx, ns.Name, selector)
		if err != nil {
			f.log.Warnw("Listing repositories failed", "namespace", ns.Name, zap.Error(err))
			metrics.UpstreamFailures.WithLabelValues("gitrepos").Inc()
			continue
		}

		for i := range repos {
			f.fetchRepo(ctx, topo, mc, &repos[i], add)
		}
	}

	f.emitClusterResources(ctx, topo, mc, add)

	return batch, ctx.Err()
}

// registerClusters seeds the topology's name and workspace maps from the
// GitOps engine's own cluster objects. These exist even when the richer
// inventory source is down.
func (f *clusterFetcher) registerClusters(ctx context.Context, topo *Topology) {
	clusters, err := f.fleet.ListClusters(ctx)
	if err != nil {
		f.log.Warnw("Listing downstream clusters failed", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("clusters").Inc()
		return
	}

	for i := range clusters {
		cluster := &clusters[i]
		topo.RegisterName(cluster.Name, cluster.DisplayName())
		topo.RegisterWorkspace(cluster.Name, cluster.Namespace)
	}
}

// fetchRepo maps one repository and everything below it.
func (f *clusterFetcher) fetchRepo(ctx context.Context, topo *Topology, base *MapperContext, repo *fleetv1alpha1.GitRepo, add func(catalog.Entity)) {
	mc := &MapperContext{Cluster: base.Cluster, Location: base.Location}
	if f.cfg.DescriptorEnabled() {
		mc.Descriptor = descriptorFor(f.log, repo)
	}

	add(mapSystem(mc, repo))

	if f.cfg.APIsEnabled() {
		for _, def := range mc.enrichment().ProvidesAPIs {
			add(mapAPI(mc, repo, def))
		}
	}

	if !f.cfg.BundlesEnabled() {
		return
	}

	bundleSelector := labels.SelectorFromSet(labels.Set{fleetv1alpha1.LabelRepoName: repo.Name})
	bundles, err := f.fleet.ListBundles(ctx, repo.Namespace, bundleSelector)
	if err != nil {
		f.log.Warnw("Listing bundles failed", "repository", repo.Name, zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("bundles").Inc()
		return
	}

	for i := range bundles {
		bundle := &bundles[i]
		component := mapComponent(mc, bundle)

		if f.cfg.DeploymentRecordsEnabled() {
			// The component points at its per-cluster deployments, closing
			// the dependency cycle the catalog renders as a bidirectional
			// relation.
			for _, ref := range f.fetchDeployments(ctx, topo, mc, bundle, add) {
				component.Spec.DependsOn = appendUnique(component.Spec.DependsOn, ref)
			}
		}

		add(component)
	}
}

// fetchDeployments maps the per-cluster deployments of one bundle and feeds
// the workspace registry along the way. It returns the references of the
// emitted deployment Resources.
func (f *clusterFetcher) fetchDeployments(ctx context.Context, topo *Topology, mc *MapperContext, bundle *fleetv1alpha1.Bundle, add func(catalog.Entity)) []string {
	selector := labels.SelectorFromSet(labels.Set{
		fleetv1alpha1.LabelBundleName:      bundle.Name,
		fleetv1alpha1.LabelBundleNamespace: bundle.Namespace,
	})
	deployments, err := f.fleet.ListBundleDeployments(ctx, selector)
	if err != nil {
		f.log.Warnw("Listing bundle deployments failed", "bundle", bundle.Name, zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("bundledeployments").Inc()
		return nil
	}

	refs := make([]string, 0, len(deployments))
	for i := range deployments {
		bd := &deployments[i]
		if workspace, clusterID, ok := ParseClusterNamespace(bd.Namespace); ok {
			topo.RegisterWorkspace(clusterID, workspace)
			topo.CollectFallback(ctx, clusterID)
		}
		entity := mapDeploymentResource(mc, topo, bd)
		refs = append(refs, catalog.Ref(entity.Kind, entity.Metadata.Namespace, entity.Metadata.Name))
		add(entity)
	}
	return refs
}

// emitClusterResources emits one Resource per discovered downstream cluster
// in its primary workspace, plus node Resources when enabled.
func (f *clusterFetcher) emitClusterResources(ctx context.Context, topo *Topology, mc *MapperContext, add func(catalog.Entity)) {
	for _, clusterID := range topo.WorkspaceClusters() {
		workspace := topo.PrimaryWorkspace(clusterID)
		topo.CollectFallback(ctx, clusterID)
		add(mapClusterResource(mc, topo, clusterID, workspace))

		if !f.cfg.NodesEnabled() {
			continue
		}
		for _, node := range topo.Nodes(clusterID) {
			add(mapNodeResource(mc, topo, node, workspace))
		}
	}
}

func namespaceSelector(ns config.NamespaceConfig) (labels.Selector, error) {
	if ns.LabelSelector == "" {
		return labels.Everything(), nil
	}
	return labels.Parse(ns.LabelSelector)
}
