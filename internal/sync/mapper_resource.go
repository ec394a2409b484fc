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
	"fmt"
	"strconv"
	"strings"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/rancher"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/status"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// Resource entity types.
const (
	TypeFleetDeployment   = "fleet-deployment"
	TypeKubernetesCluster = "kubernetes-cluster"
	TypeKubernetesNode    = "kubernetes-node"
)

// deploymentNameLimit leaves headroom below the usual 63 character limit so
// that suffixed deployment names stay well clear of it.
const deploymentNameLimit = 50

// mapDeploymentResource converts a BundleDeployment into a Resource entity
// tied to both its parent Component and the downstream cluster it runs on.
func mapDeploymentResource(mc *MapperContext, topo *Topology, bd *fleetv1alpha1.BundleDeployment) catalog.Entity {
	workspace, clusterID, ok := ParseClusterNamespace(bd.Namespace)
	if !ok {
		workspace = fleetv1alpha1.DefaultWorkspace
		clusterID = bd.Namespace
	}

	entity := newEntity(catalog.KindResource, names.ToStableSafeName(bd.Name+"-"+clusterID, deploymentNameLimit), workspace, mc.Location)
	entity.Spec.Type = TypeFleetDeployment
	entity.Spec.Owner = componentOwner(mc)
	entity.Spec.Lifecycle = status.ToLifecycle(bd.DisplayState())

	if bundleName := bd.BundleName(); bundleName != "" {
		entity.Spec.DependsOn = appendUnique(entity.Spec.DependsOn, catalog.Ref(catalog.KindComponent, workspace, names.ToSafeName(bundleName)))
	}
	entity.Spec.DependsOn = appendUnique(entity.Spec.DependsOn, catalog.Ref(catalog.KindResource, workspace, names.ToSafeName(topo.FriendlyName(clusterID))))

	entity.Metadata.Annotations[catalog.AnnotationState] = bd.DisplayState()
	if message := bd.Status.Message; message != "" {
		entity.Metadata.Annotations[catalog.AnnotationMessage] = truncateMessage(message)
	}
	entity.Metadata.Annotations[catalog.AnnotationClusterID] = clusterID
	entity.Metadata.Annotations[catalog.AnnotationWorkspace] = workspace
	if summary := appliedResourceSummary(bd); summary != "" {
		entity.Metadata.Annotations[catalog.AnnotationAppliedResource] = summary
	}

	applyEnrichmentOverrides(&entity, mc.enrichment())

	return entity
}

// mapClusterResource converts a downstream cluster into a Resource entity.
// The fleet-cluster tag lets the orchestrator recognize clusters emitted
// from different discovery paths as the same thing.
func mapClusterResource(mc *MapperContext, topo *Topology, clusterID, workspace string) catalog.Entity {
	entity := newEntity(catalog.KindResource, names.ToSafeName(topo.FriendlyName(clusterID)), workspace, mc.Location)
	entity.Spec.Type = TypeKubernetesCluster
	entity.Spec.Owner = DefaultOwner
	entity.Metadata.Tags = appendUnique(entity.Metadata.Tags, catalog.TagFleetCluster)

	entity.Metadata.Annotations[catalog.AnnotationClusterID] = clusterID
	entity.Metadata.Annotations[catalog.AnnotationWorkspace] = workspace

	if stats := topo.Stats(clusterID); stats != nil {
		if stats.Driver != "" {
			entity.Metadata.Annotations[catalog.AnnotationClusterDriver] = stats.Driver
		}
		if stats.KubernetesVersion != "" {
			entity.Metadata.Annotations[catalog.AnnotationClusterVersion] = stats.KubernetesVersion
		}
		entity.Metadata.Annotations[catalog.AnnotationNodeCount] = strconv.Itoa(stats.NodeCount)
		entity.Metadata.Description = clusterDescription(stats)
	}

	return entity
}

// mapNodeResource converts one downstream node into a Resource entity that
// depends on its cluster's Resource.
func mapNodeResource(mc *MapperContext, topo *Topology, node rancher.NodeDetail, workspace string) catalog.Entity {
	entity := newEntity(catalog.KindResource, names.ToStableSafeName(node.ClusterID+"-"+node.Name, names.MaxLength), workspace, mc.Location)
	entity.Spec.Type = TypeKubernetesNode
	entity.Spec.Owner = DefaultOwner
	entity.Spec.DependsOn = appendUnique(entity.Spec.DependsOn, catalog.Ref(catalog.KindResource, workspace, names.ToSafeName(topo.FriendlyName(node.ClusterID))))

	entity.Metadata.Annotations[catalog.AnnotationClusterID] = node.ClusterID
	if node.KubeletVersion != "" {
		entity.Metadata.Annotations[catalog.AnnotationClusterVersion] = node.KubeletVersion
	}
	if len(node.Roles) > 0 {
		entity.Metadata.Description = fmt.Sprintf("Node %s (%s)", node.Name, strings.Join(node.Roles, ","))
	}

	return entity
}

func clusterDescription(stats *ClusterStats) string {
	parts := make([]string, 0, 3)
	if stats.Driver != "" {
		parts = append(parts, stats.Driver)
	}
	if stats.KubernetesVersion != "" {
		parts = append(parts, stats.KubernetesVersion)
	}
	parts = append(parts, fmt.Sprintf("%d nodes", stats.NodeCount))
	return "Downstream cluster (" + strings.Join(parts, ", ") + ")"
}

// appliedResourceSummary condenses the per-resource state of a deployment
// into a short annotation value.
func appliedResourceSummary(bd *fleetv1alpha1.BundleDeployment) string {
	if len(bd.Status.Resources) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bd.Status.Resources))
	for _, res := range bd.Status.Resources {
		part := res.Kind + "/" + res.Name
		if res.State != "" {
			part += "=" + res.State
		}
		parts = append(parts, part)
	}
	return truncateMessage(strings.Join(parts, " "))
}
