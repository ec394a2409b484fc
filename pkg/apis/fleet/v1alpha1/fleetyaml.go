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

package v1alpha1

// FleetYAML is the top-level structure of the fleet.yaml descriptor file of
// a GitRepo. The sync never clones git; the payload arrives pre-fetched as a
// JSON annotation on the GitRepo.
type FleetYAML struct {
	// Name of the bundle which will be created from this directory.
	Name string `json:"name,omitempty"`
	// Namespace of the created bundle.
	Namespace string `json:"namespace,omitempty"`
	// DefaultNamespace is the namespace used for resources without one.
	DefaultNamespace string `json:"defaultNamespace,omitempty"`
	// TargetNamespace forces all resources into this namespace.
	TargetNamespace string `json:"targetNamespace,omitempty"`
	// Labels are copied to the bundle and can be used in a dependsOn selector.
	Labels map[string]string `json:"labels,omitempty"`
	// Helm carries the helm options of the bundle.
	Helm *HelmOptions `json:"helm,omitempty"`
	// DependsOn lists names of bundles that must be deployed before this one.
	DependsOn []string `json:"dependsOn,omitempty"`
	// Catalog is the free-form catalog enrichment section.
	Catalog *CatalogEnrichment `json:"catalog,omitempty"`
}

// CatalogEnrichment is the optional catalog section of a fleet.yaml. Every
// field is an operator-supplied override for the computed entity defaults.
type CatalogEnrichment struct {
	// Type overrides the component type, e.g. "website" or "library".
	Type string `json:"type,omitempty"`
	// Description overrides the entity description.
	Description string `json:"description,omitempty"`
	// Owner overrides the owner reference, e.g. "team-platform".
	Owner string `json:"owner,omitempty"`
	// Lifecycle overrides the computed lifecycle stage.
	Lifecycle string `json:"lifecycle,omitempty"`
	// Tags are appended to the entity tags.
	Tags []string `json:"tags,omitempty"`
	// DependsOn lists extra bundle names this deployment depends on.
	DependsOn []string `json:"dependsOn,omitempty"`
	// ProvidesAPIs declares the APIs provided by this repository.
	ProvidesAPIs []APIDefinition `json:"providesApis,omitempty"`
	// ConsumesAPIs lists names of APIs consumed by this repository.
	ConsumesAPIs []string `json:"consumesApis,omitempty"`
	// Annotations are merged last into the entity annotations, so explicit
	// overrides always win over computed defaults.
	Annotations map[string]string `json:"annotations,omitempty"`
}

// APIDefinition declares one API provided by a repository.
type APIDefinition struct {
	// Name of the API.
	Name string `json:"name,omitempty"`
	// Type of the definition, defaults to "openapi".
	Type string `json:"type,omitempty"`
	// Description of the API.
	Description string `json:"description,omitempty"`
	// Definition is the inline definition body.
	Definition string `json:"definition,omitempty"`
	// DefinitionURL points at an externally hosted definition.
	DefinitionURL string `json:"definitionUrl,omitempty"`
}
