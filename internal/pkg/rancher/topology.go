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

// Package rancher queries the cluster-manager inventory of a management
// cluster: downstream clusters, their nodes, machine deployments, versions
// and virtual machines. Every call is independent; a failure of one call
// degrades that slice of the inventory only.
package rancher

import "context"

// Condition is one health condition reported for a downstream cluster.
type Condition struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// ClusterDetail is the inventory record of one downstream cluster.
type ClusterDetail struct {
	// ID is the opaque management-side cluster id.
	ID string
	// DisplayName is the manager-assigned human-friendly name.
	DisplayName string
	// Driver is the provisioning driver, e.g. "imported" or "rke2".
	Driver string
	// KubernetesVersion is the reported version of the cluster.
	KubernetesVersion string
	// Annotations carries the raw annotations of the inventory record.
	Annotations map[string]string
	// Conditions are the reported health conditions.
	Conditions []Condition
}

// NodeDetail is the inventory record of one node of a downstream cluster.
type NodeDetail struct {
	// ClusterID is the id of the owning cluster.
	ClusterID string
	// Name of the node.
	Name string
	// KubeletVersion reported by the node.
	KubeletVersion string
	// Ready reports the node's ready condition.
	Ready bool
	// Roles are the control-plane/etcd/worker roles of the node.
	Roles []string
}

// MachineDeploymentDetail is the inventory record of one machine-deployment
// group of a provisioned cluster.
type MachineDeploymentDetail struct {
	ClusterID string
	Name      string
	Replicas  int64
	Ready     int64
}

// VirtualMachineDetail is the inventory record of one virtual machine of a
// virtualization-platform cluster.
type VirtualMachineDetail struct {
	ClusterID string
	Name      string
	Running   bool
}

// TopologyClient enumerates the downstream-cluster inventory. Each method
// issues one independent query; callers treat a failed call as an empty
// collection for that slice of the inventory.
type TopologyClient interface {
	ListClusterDetails(ctx context.Context) ([]ClusterDetail, error)
	ListNodesDetailed(ctx context.Context) (map[string][]NodeDetail, error)
	ListMachineDeploymentGroups(ctx context.Context) (map[string][]MachineDeploymentDetail, error)
	ListClusterVersions(ctx context.Context) (map[string]string, error)
	ListVirtualMachineGroups(ctx context.Context) (map[string][]VirtualMachineDetail, error)

	// ListClusterNodes is the degraded per-cluster node listing used when
	// the richer inventory is unavailable.
	ListClusterNodes(ctx context.Context, clusterID string) ([]NodeDetail, error)
}
