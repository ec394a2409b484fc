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
	SchemeBuilder.Register(&Bundle{}, &BundleList{})
}

// HelmOptions are the helm-related deployment hints of a bundle.
type HelmOptions struct {
	// ReleaseName sets the helm release name used on the target cluster.
	ReleaseName string `json:"releaseName,omitempty"`
	// Chart is the chart name or path.
	Chart string `json:"chart,omitempty"`
	// Version is the chart version constraint.
	Version string `json:"version,omitempty"`
}

// BundleRef declares a dependency on another bundle by name.
type BundleRef struct {
	// Name of the bundle this bundle depends on.
	Name string `json:"name,omitempty"`
	// Selector matches dependency bundles by label.
	Selector *metav1.LabelSelector `json:"selector,omitempty"`
}

// BundleSpec declares one deployable unit rendered from a GitRepo.
type BundleSpec struct {
	// Paused stops the bundle from being deployed.
	Paused bool `json:"paused,omitempty"`
	// DefaultNamespace is the namespace used for resources without one.
	DefaultNamespace string `json:"defaultNamespace,omitempty"`
	// TargetNamespace forces all resources into this namespace.
	TargetNamespace string `json:"targetNamespace,omitempty"`
	// Helm carries the helm options of the bundle.
	Helm *HelmOptions `json:"helm,omitempty"`
	// DependsOn lists bundles that must be deployed before this one.
	DependsOn []BundleRef `json:"dependsOn,omitempty"`
}

// BundleDisplay is the upstream-computed display summary of a Bundle.
type BundleDisplay struct {
	// ReadyClusters is a fraction like "1/2".
	ReadyClusters string `json:"readyClusters,omitempty"`
	// State is the coarse state of the bundle.
	State string `json:"state,omitempty"`
}

// BundleStatus is the observed state of a Bundle.
type BundleStatus struct {
	// Summary counts the deployment states across all targets.
	Summary BundleSummary `json:"summary,omitempty"`
	// Display is the computed display summary.
	Display BundleDisplay `json:"display,omitempty"`
	// ObservedGeneration is the most recently reconciled generation.
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// +kubebuilder:object:root=true

// Bundle is a deployable unit rendered from a GitRepo for one or more
// target clusters.
type Bundle struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BundleSpec   `json:"spec,omitempty"`
	Status BundleStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// BundleList contains a list of Bundle.
type BundleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bundle `json:"items"`
}

// RepoName returns the name of the GitRepo this bundle was rendered from,
// empty for bundles created outside a GitRepo.
func (b *Bundle) RepoName() string {
	return b.Labels[LabelRepoName]
}

// DisplayState returns the upstream-computed coarse state.
func (b *Bundle) DisplayState() string {
	return b.Status.Display.State
}

// ReleaseName returns the helm release name hint, if any.
func (b *Bundle) ReleaseName() string {
	if b.Spec.Helm == nil {
		return ""
	}
	return b.Spec.Helm.ReleaseName
}
