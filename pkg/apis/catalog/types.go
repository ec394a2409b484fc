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

// Package catalog defines the entity model produced by the sync: a flat,
// deduplicated graph of Domain, System, Component, Resource and API entities
// spanning one or more management clusters, emitted as one full-snapshot
// mutation per run.
package catalog

import (
	"fmt"
	"strings"
)

// Entity kinds emitted by the sync.
const (
	KindDomain    = "Domain"
	KindSystem    = "System"
	KindComponent = "Component"
	KindResource  = "Resource"
	KindAPI       = "API"
)

// DefaultNamespace is used when an entity has no namespace of its own.
const DefaultNamespace = "default"

// APIVersion of all emitted entities.
const APIVersion = "backstage.io/v1alpha1"

// Well-known catalog annotation keys.
const (
	AnnotationManagedByLocation       = "backstage.io/managed-by-location"
	AnnotationManagedByOriginLocation = "backstage.io/managed-by-origin-location"
	AnnotationKubernetesNamespace     = "backstage.io/kubernetes-namespace"
	AnnotationKubernetesLabelSelector = "backstage.io/kubernetes-label-selector"
	AnnotationTechdocsRef             = "backstage.io/techdocs-ref"
)

// Sync-specific annotation keys.
const (
	AnnotationClusterURL      = "fleetcatalog.io/cluster-url"
	AnnotationNamespaces      = "fleetcatalog.io/namespaces"
	AnnotationRepoURL         = "fleetcatalog.io/repo-url"
	AnnotationRepoBranch      = "fleetcatalog.io/repo-branch"
	AnnotationRepoPaths       = "fleetcatalog.io/repo-paths"
	AnnotationReadyClusters   = "fleetcatalog.io/ready-clusters"
	AnnotationState           = "fleetcatalog.io/state"
	AnnotationMessage         = "fleetcatalog.io/message"
	AnnotationClusterID       = "fleetcatalog.io/cluster-id"
	AnnotationWorkspace       = "fleetcatalog.io/workspace"
	AnnotationNodeCount       = "fleetcatalog.io/node-count"
	AnnotationClusterVersion  = "fleetcatalog.io/kubernetes-version"
	AnnotationClusterDriver   = "fleetcatalog.io/cluster-driver"
	AnnotationAppliedResource = "fleetcatalog.io/applied-resources"
)

// TagFleetCluster marks Resource entities synthesized from downstream
// clusters, enabling lookup and dedup by the orchestrator.
const TagFleetCluster = "fleet-cluster"

// Link is a titled URL attached to an entity.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Meta is the common metadata of an entity.
type Meta struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace,omitempty"`
	Description string            `json:"description,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Links       []Link            `json:"links,omitempty"`
}

// Spec carries the kind-specific fields of an entity. Only the fields
// meaningful for the entity's kind are populated.
type Spec struct {
	Type         string   `json:"type,omitempty"`
	Lifecycle    string   `json:"lifecycle,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Domain       string   `json:"domain,omitempty"`
	System       string   `json:"system,omitempty"`
	DependsOn    []string `json:"dependsOn,omitempty"`
	ProvidesAPIs []string `json:"providesApis,omitempty"`
	ConsumesAPIs []string `json:"consumesApis,omitempty"`
	Definition   string   `json:"definition,omitempty"`
}

// Entity is one node of the produced catalog graph.
type Entity struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
	Metadata   Meta   `json:"metadata"`
	Spec       Spec   `json:"spec"`
}

// Key returns the dedup key of the entity: kind, namespace and name.
// Namespace defaults to "default" so entities with and without an explicit
// default namespace collide as upstream catalogs treat them as equal.
func (e *Entity) Key() string {
	ns := e.Metadata.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return strings.ToLower(fmt.Sprintf("%s:%s/%s", e.Kind, ns, e.Metadata.Name))
}

// Ref builds an entity reference string of the form "kind:namespace/name".
func Ref(kind, namespace, name string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return strings.ToLower(fmt.Sprintf("%s:%s/%s", kind, namespace, name))
}

// DeferredEntity pairs an entity with the location identity it was produced
// under.
type DeferredEntity struct {
	Entity   Entity `json:"entity"`
	Location string `json:"locationKey,omitempty"`
}

// FullMutation is one full-snapshot emission: the complete current truth for
// every location identity it spans. Anything previously emitted under those
// identities and absent here should be considered gone.
type FullMutation struct {
	Type     string           `json:"type"`
	Entities []DeferredEntity `json:"entities"`
}

// NewFullMutation wraps entities into a full-snapshot mutation.
func NewFullMutation(entities []DeferredEntity) *FullMutation {
	return &FullMutation{Type: "full", Entities: entities}
}
