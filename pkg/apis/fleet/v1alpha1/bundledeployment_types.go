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
	SchemeBuilder.Register(&BundleDeployment{}, &BundleDeploymentList{})
}

// BundleDeploymentOptions are the per-target deployment options.
type BundleDeploymentOptions struct {
	// DefaultNamespace is the namespace used for resources without one.
	DefaultNamespace string `json:"defaultNamespace,omitempty"`
	// TargetNamespace forces all resources into this namespace.
	TargetNamespace string `json:"targetNamespace,omitempty"`
	// Helm carries the helm options applied on the target.
	Helm *HelmOptions `json:"helm,omitempty"`
}

// BundleDeploymentSpec declares the desired deployment of one bundle on one
// downstream cluster.
type BundleDeploymentSpec struct {
	// DeploymentID identifies the rendered content to deploy.
	DeploymentID string `json:"deploymentID,omitempty"`
	// StagedDeploymentID identifies content staged for the next rollout.
	StagedDeploymentID string `json:"stagedDeploymentID,omitempty"`
	// Options are the deployment options for this target.
	Options BundleDeploymentOptions `json:"options,omitempty"`
}

// BundleDeploymentDisplay is the upstream-computed display summary.
type BundleDeploymentDisplay struct {
	// Deployed summarises the apply state.
	Deployed string `json:"deployed,omitempty"`
	// Monitored summarises the monitoring state.
	Monitored string `json:"monitored,omitempty"`
	// State is the coarse state, e.g. "Ready" or "WaitApplied".
	State string `json:"state,omitempty"`
}

// BundleDeploymentStatus is the realized state of a bundle on one cluster.
type BundleDeploymentStatus struct {
	// Ready is true once all resources are in a ready state.
	Ready bool `json:"ready,omitempty"`
	// NonModified is true when no resource drifted from the rendered content.
	NonModified bool `json:"nonModified,omitempty"`
	// AppliedDeploymentID is the deployment id last applied by the agent.
	AppliedDeploymentID string `json:"appliedDeploymentID,omitempty"`
	// Message is the first error or progress message, if any.
	Message string `json:"message,omitempty"`
	// Display is the computed display summary.
	Display BundleDeploymentDisplay `json:"display,omitempty"`
	// Resources lists the resources applied on the target cluster.
	Resources []ResourceKey `json:"resources,omitempty"`
}

// +kubebuilder:object:root=true

// BundleDeployment is the realized state of one Bundle on one specific
// downstream cluster. Its namespace encodes the workspace and the target
// cluster identity.
type BundleDeployment struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BundleDeploymentSpec   `json:"spec,omitempty"`
	Status BundleDeploymentStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// BundleDeploymentList contains a list of BundleDeployment.
type BundleDeploymentList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []BundleDeployment `json:"items"`
}

// BundleName returns the name of the parent Bundle.
func (bd *BundleDeployment) BundleName() string {
	return bd.Labels[LabelBundleName]
}

// DisplayState returns the coarse state, deriving one from the ready flag
// when the display summary has not been computed upstream.
func (bd *BundleDeployment) DisplayState() string {
	if bd.Status.Display.State != "" {
		return bd.Status.Display.State
	}
	if bd.Status.Ready {
		return "Ready"
	}
	return "NotReady"
}
