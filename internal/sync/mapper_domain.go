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

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/names"
	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
)

// mapDomain converts one configured management cluster into a Domain entity.
func mapDomain(mc *MapperContext) catalog.Entity {
	hostname := mc.Cluster.URL
	if parsed, err := url.Parse(mc.Cluster.URL); err == nil && parsed.Host != "" {
		hostname = parsed.Host
	}

	namespaces := make([]string, 0, len(mc.Cluster.Namespaces))
	for _, ns := range mc.Cluster.Namespaces {
		namespaces = append(namespaces, ns.Name)
	}

	entity := newEntity(catalog.KindDomain, names.ToSafeName(mc.Cluster.Name), catalog.DefaultNamespace, mc.Location)
	entity.Metadata.Description = fmt.Sprintf("Fleet management cluster at %s", hostname)
	entity.Metadata.Annotations[catalog.AnnotationClusterURL] = mc.Cluster.URL
	entity.Metadata.Annotations[catalog.AnnotationNamespaces] = strings.Join(namespaces, ",")
	entity.Metadata.Links = []catalog.Link{{
		URL:   mc.Cluster.URL,
		Title: "Management cluster",
	}}
	entity.Spec.Owner = DefaultOwner

	return entity
}
