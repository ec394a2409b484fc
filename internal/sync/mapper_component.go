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
	"crypto/sha256"
	"fmt"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/status"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// DefaultComponentType is used when the descriptor does not classify the
// component.
const DefaultComponentType = "service"

// mapComponent converts a Bundle into a Component entity.
func mapComponent(mc *MapperContext, bundle *fleetv1alpha1.Bundle) catalog.Entity {
	entity := newEntity(catalog.KindComponent, names.ToSafeName(bundle.Name), bundle.Namespace, mc.Location)

	enrichment := mc.enrichment()

	entity.Spec.Type = enrichment.Type
	if entity.Spec.Type == "" {
		entity.Spec.Type = DefaultComponentType
	}
	entity.Metadata.Description = enrichment.Description
	entity.Spec.Owner = componentOwner(mc)
	entity.Spec.Lifecycle = status.ToLifecycle(bundle.DisplayState())
	if repoName := bundle.RepoName(); repoName != "" {
		entity.Spec.System = names.ToSafeName(repoName)
	}

	entity.Metadata.Annotations[catalog.AnnotationKubernetesNamespace] = componentNamespace(mc, bundle)
	entity.Metadata.Annotations[catalog.AnnotationKubernetesLabelSelector] = componentSelector(mc, bundle)
	entity.Metadata.Annotations[catalog.AnnotationState] = bundle.DisplayState()
	entity.Metadata.Annotations[catalog.AnnotationReadyClusters] = fmt.Sprintf("%d/%d", bundle.Status.Summary.Ready, bundle.Status.Summary.DesiredReady)

	for _, dep := range componentDependencies(mc, bundle) {
		entity.Spec.DependsOn = appendUnique(entity.Spec.DependsOn, catalog.Ref(catalog.KindResource, bundle.Namespace, names.ToSafeName(dep)))
	}

	if mc.Cluster.APIsEnabled() {
		for _, api := range enrichment.ProvidesAPIs {
			entity.Spec.ProvidesAPIs = appendUnique(entity.Spec.ProvidesAPIs, catalog.Ref(catalog.KindAPI, bundle.Namespace, names.ToSafeName(api.Name)))
		}
		for _, api := range enrichment.ConsumesAPIs {
			entity.Spec.ConsumesAPIs = appendUnique(entity.Spec.ConsumesAPIs, catalog.Ref(catalog.KindAPI, bundle.Namespace, names.ToSafeName(api)))
		}
	}

	applyEnrichmentOverrides(&entity, enrichment)

	return entity
}

func componentOwner(mc *MapperContext) string {
	if owner := mc.enrichment().Owner; owner != "" {
		return owner
	}
	return DefaultOwner
}

// componentNamespace resolves the downstream namespace a Bundle deploys
// into, walking the declared locations from most to least specific.
func componentNamespace(mc *MapperContext, bundle *fleetv1alpha1.Bundle) string {
	if bundle.Spec.TargetNamespace != "" {
		return bundle.Spec.TargetNamespace
	}
	if bundle.Spec.DefaultNamespace != "" {
		return bundle.Spec.DefaultNamespace
	}
	if bundle.Namespace != "" {
		return bundle.Namespace
	}
	if mc.Descriptor != nil {
		if mc.Descriptor.TargetNamespace != "" {
			return mc.Descriptor.TargetNamespace
		}
		if mc.Descriptor.DefaultNamespace != "" {
			return mc.Descriptor.DefaultNamespace
		}
		if mc.Descriptor.Namespace != "" {
			return mc.Descriptor.Namespace
		}
	}
	return "default"
}

// componentSelector derives a label selector matching the workloads this
// Bundle deploys. Helm-style bundles label their objects with the release
// instance; everything else falls back to the deployment hash label, which
// may over-select when several bundles share a namespace.
func componentSelector(mc *MapperContext, bundle *fleetv1alpha1.Bundle) string {
	releaseName := bundle.ReleaseName()
	if releaseName == "" && mc.Descriptor != nil && mc.Descriptor.Helm != nil {
		releaseName = mc.Descriptor.Helm.ReleaseName
	}
	if releaseName != "" {
		return "app.kubernetes.io/instance=" + releaseName
	}
	digest := sha256.Sum256([]byte(bundle.Namespace + "/" + bundle.Name))
	return fmt.Sprintf("objectset.rio.cattle.io/hash=%x", digest[:4])
}

// componentDependencies merges dependency declarations from the Bundle spec
// and the descriptor, preserving declaration order.
func componentDependencies(mc *MapperContext, bundle *fleetv1alpha1.Bundle) []string {
	var deps []string
	for _, ref := range bundle.Spec.DependsOn {
		if ref.Name != "" {
			deps = appendUnique(deps, ref.Name)
		}
	}
	if mc.Descriptor != nil {
		deps = appendUnique(deps, mc.Descriptor.DependsOn...)
	}
	deps = appendUnique(deps, mc.enrichment().DependsOn...)
	return deps
}
