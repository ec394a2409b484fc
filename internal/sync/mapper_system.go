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
	"strings"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/status"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// mapSystem converts a GitRepo into a System entity.
func mapSystem(mc *MapperContext, repo *fleetv1alpha1.GitRepo) catalog.Entity {
	entity := newEntity(catalog.KindSystem, names.ToSafeName(repo.Name), repo.Namespace, mc.Location)

	enrichment := mc.enrichment()

	entity.Metadata.Description = systemDescription(mc, repo)
	entity.Spec.Owner = systemOwner(mc, repo)
	entity.Spec.Domain = names.ToSafeName(mc.Cluster.Name)

	state := systemState(repo)
	entity.Spec.Lifecycle = status.ToLifecycle(state)

	entity.Metadata.Annotations[catalog.AnnotationKubernetesNamespace] = systemNamespace(mc, repo)
	entity.Metadata.Annotations[catalog.AnnotationKubernetesLabelSelector] = fmt.Sprintf("%s=%s", fleetv1alpha1.LabelRepoName, repo.Name)
	entity.Metadata.Annotations[catalog.AnnotationRepoURL] = repo.Spec.Repo
	if repo.Spec.Branch != "" {
		entity.Metadata.Annotations[catalog.AnnotationRepoBranch] = repo.Spec.Branch
	}
	if len(repo.Spec.Paths) > 0 {
		entity.Metadata.Annotations[catalog.AnnotationRepoPaths] = strings.Join(repo.Spec.Paths, ",")
	}
	entity.Metadata.Annotations[catalog.AnnotationReadyClusters] = fmt.Sprintf("%d/%d", repo.Status.ReadyClusters, repo.Status.DesiredReadyClusters)
	entity.Metadata.Annotations[catalog.AnnotationState] = state
	if message := repo.Status.Display.Message; message != "" {
		entity.Metadata.Annotations[catalog.AnnotationMessage] = truncateMessage(message)
	}

	if repo.Spec.Repo != "" {
		entity.Metadata.Links = []catalog.Link{{
			URL:   strings.TrimSuffix(repo.Spec.Repo, ".git"),
			Title: "Source repository",
		}}
	}

	if mc.Cluster.APIsEnabled() {
		for _, api := range enrichment.ProvidesAPIs {
			entity.Spec.ProvidesAPIs = appendUnique(entity.Spec.ProvidesAPIs, catalog.Ref(catalog.KindAPI, repo.Namespace, names.ToSafeName(api.Name)))
		}
		for _, api := range enrichment.ConsumesAPIs {
			entity.Spec.ConsumesAPIs = appendUnique(entity.Spec.ConsumesAPIs, catalog.Ref(catalog.KindAPI, repo.Namespace, names.ToSafeName(api)))
		}
	}

	applyEnrichmentOverrides(&entity, enrichment)

	// The techdocs default only fills a gap left open after overrides.
	if _, ok := entity.Metadata.Annotations[catalog.AnnotationTechdocsRef]; !ok && mc.Cluster.AutoDocRefEnabled() && repo.Spec.Repo != "" {
		entity.Metadata.Annotations[catalog.AnnotationTechdocsRef] = "url:" + repoTreeURL(repo.Spec.Repo, repo.Spec.Branch)
	}

	return entity
}

// systemState returns the upstream-computed display state, folding the
// per-resource states to the worst one when the summary is not populated.
func systemState(repo *fleetv1alpha1.GitRepo) string {
	if state := repo.DisplayState(); state != "" {
		return state
	}
	states := make([]string, 0, len(repo.Status.Resources))
	for _, res := range repo.Status.Resources {
		states = append(states, res.State)
	}
	return status.WorstOf(states)
}

// systemDescription prefers the operator-authored description, then the
// GitRepo object description, then a synthesized fallback.
func systemDescription(mc *MapperContext, repo *fleetv1alpha1.GitRepo) string {
	if desc := mc.enrichment().Description; desc != "" {
		return desc
	}
	if desc := repo.Description(); desc != "" {
		return desc
	}
	return fmt.Sprintf("Deployments from %s (no description provided)", repo.Spec.Repo)
}

// systemOwner resolves the owning group of a GitRepo.
func systemOwner(mc *MapperContext, repo *fleetv1alpha1.GitRepo) string {
	if owner := mc.enrichment().Owner; owner != "" {
		return owner
	}
	if owner := ownerFromRepoURL(repo.Spec.Repo); owner != "" {
		return owner
	}
	return DefaultOwner
}

// systemNamespace resolves the cluster namespace the GitRepo deploys into,
// preferring observed resources over declared defaults.
func systemNamespace(mc *MapperContext, repo *fleetv1alpha1.GitRepo) string {
	for _, res := range repo.Status.Resources {
		if res.Namespace != "" {
			return res.Namespace
		}
	}
	if repo.Spec.TargetNamespace != "" {
		return repo.Spec.TargetNamespace
	}
	if mc.Descriptor != nil {
		if mc.Descriptor.DefaultNamespace != "" {
			return mc.Descriptor.DefaultNamespace
		}
		if mc.Descriptor.Namespace != "" {
			return mc.Descriptor.Namespace
		}
	}
	return repo.Namespace
}
