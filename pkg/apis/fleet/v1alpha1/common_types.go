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

const (
	// LabelRepoName links a Bundle back to the GitRepo it was rendered from.
	LabelRepoName = "fleet.cattle.io/repo-name"

	// LabelBundlePath carries the path inside the GitRepo a Bundle was rendered from.
	LabelBundlePath = "fleet.cattle.io/bundle-path"

	// LabelBundleName links a BundleDeployment back to its parent Bundle.
	LabelBundleName = "fleet.cattle.io/bundle-name"

	// LabelBundleNamespace carries the namespace of the parent Bundle on a BundleDeployment.
	LabelBundleNamespace = "fleet.cattle.io/bundle-namespace"

	// LabelManagedClusterName is set by the cluster manager on downstream
	// Cluster resources and carries the management-side cluster id.
	LabelManagedClusterName = "management.cattle.io/cluster-name"

	// LabelManagedClusterDisplayName is set by the cluster manager on
	// downstream Cluster resources and carries the human-friendly name.
	LabelManagedClusterDisplayName = "management.cattle.io/cluster-display-name"

	// AnnotationClusterDisplayName can be set directly on a downstream
	// Cluster to override its displayed name.
	AnnotationClusterDisplayName = "fleet.cattle.io/cluster-display-name"

	// AnnotationHarvesterDisplayName is the display-name annotation used by
	// the Harvester virtualization platform for its clusters.
	AnnotationHarvesterDisplayName = "harvesterhci.io/displayName"

	// AnnotationGitRepoDescription is an optional free-form description
	// carried on a GitRepo.
	AnnotationGitRepoDescription = "field.cattle.io/description"

	// AnnotationDescriptor holds a pre-fetched fleet.yaml payload (JSON) on a
	// GitRepo. Populating it is the job of an external fetcher; actual Git
	// access is out of scope for this manager.
	AnnotationDescriptor = "fleetcatalog.io/descriptor"
)

// DefaultWorkspace is the workspace namespace Fleet uses when none is
// configured explicitly.
const DefaultWorkspace = "fleet-default"

// BundleSummary counts the per-cluster deployment states of a bundle.
type BundleSummary struct {
	Ready        int `json:"ready,omitempty"`
	DesiredReady int `json:"desiredReady,omitempty"`
	NotReady     int `json:"notReady,omitempty"`
	Pending      int `json:"pending,omitempty"`
	OutOfSync    int `json:"outOfSync,omitempty"`
	Modified     int `json:"modified,omitempty"`
	WaitApplied  int `json:"waitApplied,omitempty"`
	ErrApplied   int `json:"errApplied,omitempty"`
}

// ResourceCounts contains the number of managed resources in each state.
type ResourceCounts struct {
	Ready        int `json:"ready,omitempty"`
	DesiredReady int `json:"desiredReady,omitempty"`
	WaitApplied  int `json:"waitApplied,omitempty"`
	Modified     int `json:"modified,omitempty"`
	Orphaned     int `json:"orphaned,omitempty"`
	Missing      int `json:"missing,omitempty"`
	Unknown      int `json:"unknown,omitempty"`
	NotReady     int `json:"notReady,omitempty"`
}

// ResourceKey identifies one applied resource of a bundle or deployment.
type ResourceKey struct {
	// APIVersion is the API version of the resource.
	APIVersion string `json:"apiVersion,omitempty"`
	// Kind is the k8s kind of the resource.
	Kind string `json:"kind,omitempty"`
	// Namespace of the resource, empty for cluster-scoped kinds.
	Namespace string `json:"namespace,omitempty"`
	// Name of the resource.
	Name string `json:"name,omitempty"`
	// State is the state of the resource, e.g. "WaitApplied", "ErrApplied" or "Ready".
	State string `json:"state,omitempty"`
}
