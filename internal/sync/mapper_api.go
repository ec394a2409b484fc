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

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// DefaultAPIType is assumed when the definition does not name one.
const DefaultAPIType = "openapi"

// mapAPI converts one descriptor-declared API definition into an API entity
// attached to the GitRepo's System.
func mapAPI(mc *MapperContext, repo *fleetv1alpha1.GitRepo, def fleetv1alpha1.APIDefinition) catalog.Entity {
	entity := newEntity(catalog.KindAPI, names.ToSafeName(def.Name), repo.Namespace, mc.Location)

	entity.Spec.Type = def.Type
	if entity.Spec.Type == "" {
		entity.Spec.Type = DefaultAPIType
	}
	entity.Metadata.Description = def.Description
	entity.Spec.Owner = systemOwner(mc, repo)
	entity.Spec.System = names.ToSafeName(repo.Name)
	entity.Spec.Definition = apiDefinitionBody(def)

	applyEnrichmentOverrides(&entity, mc.enrichment())

	return entity
}

func apiDefinitionBody(def fleetv1alpha1.APIDefinition) string {
	if def.Definition != "" {
		return def.Definition
	}
	if def.DefinitionURL != "" {
		return fmt.Sprintf("# Definition available at %s", def.DefinitionURL)
	}
	return "# No definition provided"
}
