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
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// descriptorFor parses the pre-fetched fleet.yaml payload of a GitRepo.
// The payload is a JSON annotation populated by an external fetcher; a
// missing or malformed payload is treated as "no descriptor file".
func descriptorFor(log *zap.SugaredLogger, repo *fleetv1alpha1.GitRepo) *fleetv1alpha1.FleetYAML {
	raw := repo.Annotations[fleetv1alpha1.AnnotationDescriptor]
	if raw == "" {
		return nil
	}

	descriptor := &fleetv1alpha1.FleetYAML{}
	if err := yaml.Unmarshal([]byte(raw), descriptor); err != nil {
		log.Warnw("Ignoring malformed descriptor annotation",
			"gitrepo", repo.Namespace+"/"+repo.Name, zap.Error(err))
		return nil
	}
	return descriptor
}
