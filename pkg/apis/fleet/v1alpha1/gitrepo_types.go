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

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&GitRepo{}, &GitRepoList{})
}

// GitRepoSpec declares a Git-backed deployment source.
type GitRepoSpec struct {
	// Repo is the URL of the git repository.
	Repo string `json:"repo,omitempty"`
	// Branch is the git branch to follow. Defaults to master upstream.
	Branch string `json:"branch,omitempty"`
	// Paths are the directories relative to the git repo root that are
	// turned into bundles.
	Paths []string `json:"paths,omitempty"`
	// TargetNamespace, if set, forces all resources into this namespace.
	TargetNamespace string `json:"targetNamespace,omitempty"`
	// Targets select the downstream clusters the rendered bundles apply to.
	Targets []GitTarget `json:"targets,omitempty"`
}

// GitTarget selects a set of downstream clusters.
type GitTarget struct {
	// Name of the target, unused by the sync.
	Name string `json:"name,omitempty"`
	// ClusterName selects one cluster by name.
	ClusterName string `json:"clusterName,omitempty"`
	// ClusterSelector selects clusters by label.
	ClusterSelector *metav1.LabelSelector `json:"clusterSelector,omitempty"`
}

// GitRepoDisplay is the upstream-computed display summary of a GitRepo.
type GitRepoDisplay struct {
	// ReadyBundleDeployments is a fraction like "2/3".
	ReadyBundleDeployments string `json:"readyBundleDeployments,omitempty"`
	// State is the coarse state, e.g. "Ready" or "ErrApplied".
	State string `json:"state,omitempty"`
	// Message is the first error message, if any.
	Message string `json:"message,omitempty"`
	// Error is true when Message is populated from an error condition.
	Error bool `json:"error,omitempty"`
}

// GitRepoStatus is the observed state of a GitRepo.
type GitRepoStatus struct {
	// ReadyClusters is the number of clusters the repo is fully deployed to.
	ReadyClusters int `json:"readyClusters,omitempty"`
	// DesiredReadyClusters is the number of clusters targeted by the repo.
	DesiredReadyClusters int `json:"desiredReadyClusters,omitempty"`
	// Commit is the last resolved git commit.
	Commit string `json:"commit,omitempty"`
	// Display is the computed display summary.
	Display GitRepoDisplay `json:"display,omitempty"`
	// Summary counts per-cluster bundle deployment states.
	Summary BundleSummary `json:"summary,omitempty"`
	// ResourceCounts counts the managed resources by state.
	ResourceCounts ResourceCounts `json:"resourceCounts,omitempty"`
	// Resources lists the applied resources across all targets.
	Resources []ResourceKey `json:"resources,omitempty"`
}

// +kubebuilder:object:root=true

// GitRepo is a declared Git-backed deployment unit of the GitOps engine.
type GitRepo struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GitRepoSpec   `json:"spec,omitempty"`
	Status GitRepoStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// GitRepoList contains a list of GitRepo.
type GitRepoList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GitRepo `json:"items"`
}

// DisplayState returns the upstream-computed coarse state, empty when the
// status has not been populated yet.
func (g *GitRepo) DisplayState() string {
	return g.Status.Display.State
}

// Description returns the free-form description annotation, if present.
func (g *GitRepo) Description() string {
	return g.Annotations[AnnotationGitRepoDescription]
}
