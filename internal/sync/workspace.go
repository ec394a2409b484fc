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
	"regexp"
	"strings"

	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// clusterNamespacePrefix starts every workspace-scoped cluster namespace
// created by the GitOps engine.
const clusterNamespacePrefix = "cluster-"

var (
	// shortNamePattern strips the randomly generated 12-hex suffix the
	// engine appends to downstream cluster identifiers.
	shortNamePattern = regexp.MustCompile(`^(.*?)-[a-f0-9]{12}$`)

	// suffixedClusterPattern splits a cluster namespace whose cluster id
	// carries the 12-hex suffix; the workspace token is matched non-greedily.
	suffixedClusterPattern = regexp.MustCompile(`^([a-z0-9][a-z0-9-]*?)-([a-z0-9][a-z0-9-]*-[a-f0-9]{12})$`)

	// knownWorkspaces are matched before any pattern, since workspace names
	// themselves contain hyphens and would otherwise split ambiguously.
	knownWorkspaces = []string{fleetv1alpha1.DefaultWorkspace, "fleet-local"}
)

// ParseClusterNamespace extracts the workspace and cluster id from a
// namespace of the form "cluster-<workspace>-<clusterID>".
func ParseClusterNamespace(namespace string) (workspace, clusterID string, ok bool) {
	rest, found := strings.CutPrefix(namespace, clusterNamespacePrefix)
	if !found || rest == "" {
		return "", "", false
	}

	for _, ws := range knownWorkspaces {
		if id, found := strings.CutPrefix(rest, ws+"-"); found && id != "" {
			return ws, id, true
		}
	}

	if m := suffixedClusterPattern.FindStringSubmatch(rest); m != nil {
		return m[1], m[2], true
	}

	// Generic split: the first token is the workspace, the remainder the id.
	if ws, id, found := strings.Cut(rest, "-"); found && ws != "" && id != "" {
		return ws, id, true
	}

	return "", "", false
}

// ShortClusterName derives the cluster name without the engine-appended
// 12-hex suffix, or empty when the id carries no such suffix.
func ShortClusterName(clusterID string) string {
	if m := shortNamePattern.FindStringSubmatch(clusterID); m != nil {
		return m[1]
	}
	return ""
}
