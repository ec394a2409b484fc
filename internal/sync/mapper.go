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
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// DefaultOwner is assigned when neither the descriptor nor the source URL
// yields an owner.
const DefaultOwner = "group:default/default"

// maxMessageLength bounds the status message stored as an annotation.
const maxMessageLength = 500

// MapperContext carries the per-resource context of one mapping call. The
// mappers themselves are pure: same resource and context, same entity.
type MapperContext struct {
	// Cluster is the owning management cluster configuration.
	Cluster *config.ClusterConfig
	// Location is the sync identity every entity is tagged with.
	Location string
	// Descriptor is the optional parsed fleet.yaml of the current GitRepo.
	Descriptor *fleetv1alpha1.FleetYAML
}

// Location identity of a configured management cluster.
func locationFor(cluster *config.ClusterConfig) string {
	return "fleet:" + cluster.Name
}

// enrichment returns the catalog section of the descriptor, never nil.
func (mc *MapperContext) enrichment() *fleetv1alpha1.CatalogEnrichment {
	if mc.Descriptor == nil || mc.Descriptor.Catalog == nil {
		return &fleetv1alpha1.CatalogEnrichment{}
	}
	return mc.Descriptor.Catalog
}

// newEntity builds the common skeleton of an emitted entity.
func newEntity(kind, name, namespace, location string) catalog.Entity {
	return catalog.Entity{
		APIVersion: catalog.APIVersion,
		Kind:       kind,
		Metadata: catalog.Meta{
			Name:      name,
			Namespace: namespace,
			Annotations: map[string]string{
				catalog.AnnotationManagedByLocation:       location,
				catalog.AnnotationManagedByOriginLocation: location,
			},
		},
	}
}

// applyEnrichmentOverrides merges the operator-supplied enrichment into an
// entity. It runs last in every mapper so explicit overrides always win
// over computed defaults.
func applyEnrichmentOverrides(e *catalog.Entity, enrichment *fleetv1alpha1.CatalogEnrichment) {
	if enrichment == nil {
		return
	}
	for _, tag := range enrichment.Tags {
		e.Metadata.Tags = appendUnique(e.Metadata.Tags, names.ToSafeName(tag))
	}
	if enrichment.Lifecycle != "" && e.Spec.Lifecycle != "" {
		e.Spec.Lifecycle = enrichment.Lifecycle
	}
	for k, v := range enrichment.Annotations {
		e.Metadata.Annotations[k] = v
	}
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}

// ownerFromRepoURL derives a group owner from the first path segment of a
// source URL, e.g. https://git.example.com/platform/app -> group:default/platform.
func ownerFromRepoURL(repoURL string) string {
	parsed, err := url.Parse(repoURL)
	if err != nil {
		return ""
	}
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			return "group:default/" + names.ToSafeName(segment)
		}
	}
	return ""
}

// repoTreeURL builds a browsable tree URL from a repo URL and branch.
func repoTreeURL(repoURL, branch string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(repoURL, "/"), ".git")
	if branch == "" {
		branch = "master"
	}
	return fmt.Sprintf("%s/tree/%s", trimmed, branch)
}

// truncateMessage caps a status message at maxMessageLength bytes without
// splitting a multi-byte rune.
func truncateMessage(message string) string {
	if len(message) <= maxMessageLength {
		return message
	}
	cut := maxMessageLength
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut]
}
