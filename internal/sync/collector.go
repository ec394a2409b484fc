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
	"sort"

	"go.uber.org/zap"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/metrics"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/rancher"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// ClusterStats aggregates the inventory enrichment of one downstream
// cluster.
type ClusterStats struct {
	Driver                 string
	KubernetesVersion      string
	NodeCount              int
	ReadyNodeCount         int
	MachineDeploymentCount int
	VirtualMachineCount    int
	Conditions             []rancher.Condition
}

// Topology is the run-scoped inventory state of one management cluster: the
// friendly-name map, per-cluster statistics and the workspace registry. It
// is built once per pass and discarded afterwards, so runs stay independent.
type Topology struct {
	log    *zap.SugaredLogger
	client rancher.TopologyClient

	degraded   bool
	names      map[string]string
	stats      map[string]*ClusterStats
	nodes      map[string][]rancher.NodeDetail
	workspaces map[string][]string
}

// CollectTopology queries the downstream-cluster inventory once. Each
// inventory call degrades independently: a failure empties that slice of
// the enrichment but never fails the collection. When the cluster details
// themselves are unavailable the topology enters degraded mode and cluster
// identity is later derived from deployment namespaces instead.
func CollectTopology(ctx context.Context, log *zap.SugaredLogger, client rancher.TopologyClient) *Topology {
	t := &Topology{
		log:        log,
		client:     client,
		names:      map[string]string{},
		stats:      map[string]*ClusterStats{},
		nodes:      map[string][]rancher.NodeDetail{},
		workspaces: map[string][]string{},
	}

	details, err := client.ListClusterDetails(ctx)
	if err != nil {
		log.Warnw("Downstream cluster inventory unavailable, falling back to namespace-derived cluster identity", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("cluster-details").Inc()
		t.degraded = true
		return t
	}

	for _, d := range details {
		t.names[d.ID] = friendlyNameOf(d)
		t.stats[d.ID] = &ClusterStats{
			Driver:            d.Driver,
			KubernetesVersion: d.KubernetesVersion,
			Conditions:        d.Conditions,
		}
	}

	if nodes, err := client.ListNodesDetailed(ctx); err != nil {
		log.Warnw("Node inventory unavailable", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("nodes").Inc()
	} else {
		for clusterID, list := range nodes {
			t.nodes[clusterID] = list
			s := t.ensureStats(clusterID)
			s.NodeCount = len(list)
			for _, n := range list {
				if n.Ready {
					s.ReadyNodeCount++
				}
				if s.KubernetesVersion == "" && n.KubeletVersion != "" {
					s.KubernetesVersion = n.KubeletVersion
				}
			}
		}
	}

	if groups, err := client.ListMachineDeploymentGroups(ctx); err != nil {
		log.Warnw("Machine deployment inventory unavailable", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("machine-deployments").Inc()
	} else {
		for clusterID, list := range groups {
			t.ensureStats(clusterID).MachineDeploymentCount = len(list)
		}
	}

	if versions, err := client.ListClusterVersions(ctx); err != nil {
		log.Warnw("Cluster version inventory unavailable", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("cluster-versions").Inc()
	} else {
		for clusterID, version := range versions {
			if s := t.ensureStats(clusterID); s.KubernetesVersion == "" {
				s.KubernetesVersion = version
			}
		}
	}

	if vms, err := client.ListVirtualMachineGroups(ctx); err != nil {
		log.Warnw("Virtual machine inventory unavailable", zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("virtual-machines").Inc()
	} else {
		for clusterID, list := range vms {
			t.ensureStats(clusterID).VirtualMachineCount = len(list)
		}
	}

	return t
}

// friendlyNameOf resolves the best human-friendly name of an inventory
// record: display-name annotation, manager-assigned display name,
// virtualization-platform override, then the raw id.
func friendlyNameOf(d rancher.ClusterDetail) string {
	if v := d.Annotations[fleetv1alpha1.AnnotationClusterDisplayName]; v != "" {
		return v
	}
	if d.DisplayName != "" {
		return d.DisplayName
	}
	if v := d.Annotations[fleetv1alpha1.AnnotationHarvesterDisplayName]; v != "" {
		return v
	}
	return d.ID
}

func (t *Topology) ensureStats(clusterID string) *ClusterStats {
	if s, ok := t.stats[clusterID]; ok {
		return s
	}
	s := &ClusterStats{}
	t.stats[clusterID] = s
	return s
}

// Degraded reports whether the rich inventory was unavailable this pass.
func (t *Topology) Degraded() bool {
	return t.degraded
}

// LookupName returns the friendly-name map hit for the full cluster id or
// its derived short name.
func (t *Topology) LookupName(clusterID string) (string, bool) {
	if name, ok := t.names[clusterID]; ok {
		return name, true
	}
	if short := ShortClusterName(clusterID); short != "" {
		if name, ok := t.names[short]; ok {
			return name, true
		}
	}
	return "", false
}

// FriendlyName resolves the friendly name of a cluster, falling back to the
// raw id.
func (t *Topology) FriendlyName(clusterID string) string {
	if name, ok := t.LookupName(clusterID); ok {
		return name
	}
	return clusterID
}

// Stats returns the enrichment statistics of a cluster, nil when unknown.
func (t *Topology) Stats(clusterID string) *ClusterStats {
	if s, ok := t.stats[clusterID]; ok {
		return s
	}
	if short := ShortClusterName(clusterID); short != "" {
		return t.stats[short]
	}
	return nil
}

// Nodes returns the discovered nodes of a cluster.
func (t *Topology) Nodes(clusterID string) []rancher.NodeDetail {
	if list, ok := t.nodes[clusterID]; ok {
		return list
	}
	if short := ShortClusterName(clusterID); short != "" {
		return t.nodes[short]
	}
	return nil
}

// RegisterName records a friendly name learned outside the inventory, e.g.
// from the GitOps engine's own cluster objects. Inventory names win.
func (t *Topology) RegisterName(clusterID, name string) {
	if clusterID == "" || name == "" {
		return
	}
	if _, ok := t.names[clusterID]; !ok {
		t.names[clusterID] = name
	}
}

// RegisterWorkspace records a workspace observed for a cluster, keeping
// first-seen order.
func (t *Topology) RegisterWorkspace(clusterID, workspace string) {
	if clusterID == "" || workspace == "" {
		return
	}
	for _, ws := range t.workspaces[clusterID] {
		if ws == workspace {
			return
		}
	}
	t.workspaces[clusterID] = append(t.workspaces[clusterID], workspace)
}

// PrimaryWorkspace is the first-seen workspace of a cluster, preferring the
// engine's default workspace whenever it was observed at all.
func (t *Topology) PrimaryWorkspace(clusterID string) string {
	observed := t.workspaces[clusterID]
	for _, ws := range observed {
		if ws == fleetv1alpha1.DefaultWorkspace {
			return ws
		}
	}
	if len(observed) > 0 {
		return observed[0]
	}
	return fleetv1alpha1.DefaultWorkspace
}

// WorkspaceClusters lists all cluster ids that registered a workspace, in a
// stable order.
func (t *Topology) WorkspaceClusters() []string {
	ids := make([]string, 0, len(t.workspaces))
	for id := range t.workspaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CollectFallback fills in minimal statistics for a cluster discovered via
// deployment namespaces while the rich inventory is unavailable.
func (t *Topology) CollectFallback(ctx context.Context, clusterID string) {
	if !t.degraded {
		return
	}
	if _, ok := t.stats[clusterID]; ok {
		return
	}

	s := t.ensureStats(clusterID)
	nodes, err := t.client.ListClusterNodes(ctx, clusterID)
	if err != nil {
		t.log.Debugw("Fallback node listing unavailable", "cluster", clusterID, zap.Error(err))
		metrics.UpstreamFailures.WithLabelValues("cluster-nodes").Inc()
		return
	}

	t.nodes[clusterID] = nodes
	s.NodeCount = len(nodes)
	for _, n := range nodes {
		if n.Ready {
			s.ReadyNodeCount++
		}
		if s.KubernetesVersion == "" && n.KubeletVersion != "" {
			s.KubernetesVersion = n.KubeletVersion
		}
	}
}
