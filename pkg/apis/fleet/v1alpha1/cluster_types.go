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
	SchemeBuilder.Register(&Cluster{}, &ClusterList{})
}

// ClusterSpec declares a downstream cluster registration.
type ClusterSpec struct {
	// ClientID is the self-assigned id of the registering agent.
	ClientID string `json:"clientID,omitempty"`
	// Paused stops deployments to this cluster.
	Paused bool `json:"paused,omitempty"`
}

// ClusterDisplay is the upstream-computed display summary of a cluster.
type ClusterDisplay struct {
	// ReadyBundles is a fraction like "4/4".
	ReadyBundles string `json:"readyBundles,omitempty"`
	// State is the coarse state of the cluster.
	State string `json:"state,omitempty"`
}

// ClusterAgentStatus reports on the agent running in the downstream cluster.
type ClusterAgentStatus struct {
	// LastSeen is the last check-in time of the agent.
	LastSeen metav1.Time `json:"lastSeen,omitempty"`
	// Namespace the agent runs in on the downstream cluster.
	Namespace string `json:"namespace,omitempty"`
}

// ClusterStatus is the observed state of a downstream cluster.
type ClusterStatus struct {
	// Namespace is the workspace-scoped namespace holding this cluster's
	// BundleDeployments on the management cluster.
	Namespace string `json:"namespace,omitempty"`
	// Display is the computed display summary.
	Display ClusterDisplay `json:"display,omitempty"`
	// Summary counts the bundle deployment states on this cluster.
	Summary BundleSummary `json:"summary,omitempty"`
	// Agent reports on the downstream agent.
	Agent ClusterAgentStatus `json:"agent,omitempty"`
}

// +kubebuilder:object:root=true

// Cluster is a downstream cluster managed by the GitOps engine.
type Cluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ClusterSpec   `json:"spec,omitempty"`
	Status ClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ClusterList contains a list of Cluster.
type ClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Cluster `json:"items"`
}

// DisplayName resolves the best human-friendly name for the cluster:
// explicit display-name annotation, manager-assigned display name,
// virtualization-platform override, then the raw object name.
func (c *Cluster) DisplayName() string {
	if v := c.Annotations[AnnotationClusterDisplayName]; v != "" {
		return v
	}
	if v := c.Labels[LabelManagedClusterDisplayName]; v != "" {
		return v
	}
	if v := c.Annotations[AnnotationHarvesterDisplayName]; v != "" {
		return v
	}
	return c.Name
}
