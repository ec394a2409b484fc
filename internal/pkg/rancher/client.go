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

package rancher

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/rest"
	ctrlruntimeclient "sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
)

var (
	managementClusterGVK = schema.GroupVersionKind{
		Group: "management.cattle.io", Version: "v3", Kind: "ClusterList",
	}
	managementNodeGVK = schema.GroupVersionKind{
		Group: "management.cattle.io", Version: "v3", Kind: "NodeList",
	}
	machineDeploymentGVK = schema.GroupVersionKind{
		Group: "cluster.x-k8s.io", Version: "v1beta1", Kind: "MachineDeploymentList",
	}
	virtualMachineGVK = schema.GroupVersionKind{
		Group: "kubevirt.io", Version: "v1", Kind: "VirtualMachineList",
	}
)

// Client implements TopologyClient against the management API of one
// cluster using unstructured reads, since the inventory types belong to
// API groups this manager does not own.
type Client struct {
	reader ctrlruntimeclient.Reader
}

var _ TopologyClient = &Client{}

// New builds a topology client for the given management cluster.
func New(cluster *config.ClusterConfig) (*Client, error) {
	token, err := cluster.BearerToken()
	if err != nil {
		return nil, err
	}

	restCfg := &rest.Config{
		Host:        cluster.URL,
		BearerToken: token,
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: cluster.InsecureSkipTLSVerify,
		},
	}

	c, err := ctrlruntimeclient.New(restCfg, ctrlruntimeclient.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create topology client for cluster %q: %w", cluster.Name, err)
	}
	return &Client{reader: c}, nil
}

// NewFromReader wraps an existing reader, used by tests.
func NewFromReader(reader ctrlruntimeclient.Reader) *Client {
	return &Client{reader: reader}
}

func (c *Client) list(ctx context.Context, gvk schema.GroupVersionKind, opts ...ctrlruntimeclient.ListOption) (*unstructured.UnstructuredList, error) {
	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(gvk)
	if err := c.reader.List(ctx, list, opts...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", gvk.Kind, err)
	}
	return list, nil
}

func (c *Client) ListClusterDetails(ctx context.Context) ([]ClusterDetail, error) {
	list, err := c.list(ctx, managementClusterGVK)
	if err != nil {
		return nil, err
	}

	details := make([]ClusterDetail, 0, len(list.Items))
	for i := range list.Items {
		item := &list.Items[i]
		detail := ClusterDetail{
			ID:          item.GetName(),
			Annotations: item.GetAnnotations(),
		}
		detail.DisplayName, _, _ = unstructured.NestedString(item.Object, "spec", "displayName")
		detail.Driver, _, _ = unstructured.NestedString(item.Object, "status", "driver")
		detail.KubernetesVersion, _, _ = unstructured.NestedString(item.Object, "status", "version", "gitVersion")

		conditions, _, _ := unstructured.NestedSlice(item.Object, "status", "conditions")
		for _, raw := range conditions {
			cond, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			condType, _ := cond["type"].(string)
			condStatus, _ := cond["status"].(string)
			detail.Conditions = append(detail.Conditions, Condition{Type: condType, Status: condStatus})
		}

		details = append(details, detail)
	}
	return details, nil
}

func (c *Client) ListNodesDetailed(ctx context.Context) (map[string][]NodeDetail, error) {
	list, err := c.list(ctx, managementNodeGVK)
	if err != nil {
		return nil, err
	}
	return groupNodes(list), nil
}

func (c *Client) ListClusterNodes(ctx context.Context, clusterID string) ([]NodeDetail, error) {
	// Management-side node records are namespaced by cluster id.
	list, err := c.list(ctx, managementNodeGVK, ctrlruntimeclient.InNamespace(clusterID))
	if err != nil {
		return nil, err
	}
	return groupNodes(list)[clusterID], nil
}

func groupNodes(list *unstructured.UnstructuredList) map[string][]NodeDetail {
	grouped := map[string][]NodeDetail{}
	for i := range list.Items {
		item := &list.Items[i]
		node := NodeDetail{
			ClusterID: item.GetNamespace(),
			Name:      item.GetName(),
		}
		if requested, _, _ := unstructured.NestedString(item.Object, "status", "nodeName"); requested != "" {
			node.Name = requested
		}
		node.KubeletVersion, _, _ = unstructured.NestedString(item.Object, "status", "internalNodeStatus", "nodeInfo", "kubeletVersion")

		if cp, _, _ := unstructured.NestedBool(item.Object, "spec", "controlPlane"); cp {
			node.Roles = append(node.Roles, "control-plane")
		}
		if etcd, _, _ := unstructured.NestedBool(item.Object, "spec", "etcd"); etcd {
			node.Roles = append(node.Roles, "etcd")
		}
		if worker, _, _ := unstructured.NestedBool(item.Object, "spec", "worker"); worker {
			node.Roles = append(node.Roles, "worker")
		}

		conditions, _, _ := unstructured.NestedSlice(item.Object, "status", "conditions")
		for _, raw := range conditions {
			cond, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if condType, _ := cond["type"].(string); condType == "Ready" {
				condStatus, _ := cond["status"].(string)
				node.Ready = condStatus == "True"
			}
		}

		grouped[node.ClusterID] = append(grouped[node.ClusterID], node)
	}
	return grouped
}

func (c *Client) ListMachineDeploymentGroups(ctx context.Context) (map[string][]MachineDeploymentDetail, error) {
	list, err := c.list(ctx, machineDeploymentGVK)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]MachineDeploymentDetail{}
	for i := range list.Items {
		item := &list.Items[i]
		clusterID, _, _ := unstructured.NestedString(item.Object, "spec", "clusterName")
		if clusterID == "" {
			clusterID = item.GetLabels()["cluster.x-k8s.io/cluster-name"]
		}
		if clusterID == "" {
			continue
		}

		md := MachineDeploymentDetail{ClusterID: clusterID, Name: item.GetName()}
		md.Replicas, _, _ = unstructured.NestedInt64(item.Object, "spec", "replicas")
		md.Ready, _, _ = unstructured.NestedInt64(item.Object, "status", "readyReplicas")
		grouped[clusterID] = append(grouped[clusterID], md)
	}
	return grouped, nil
}

func (c *Client) ListClusterVersions(ctx context.Context) (map[string]string, error) {
	details, err := c.ListClusterDetails(ctx)
	if err != nil {
		return nil, err
	}

	versions := make(map[string]string, len(details))
	for _, d := range details {
		if d.KubernetesVersion != "" {
			versions[d.ID] = d.KubernetesVersion
		}
	}
	return versions, nil
}

func (c *Client) ListVirtualMachineGroups(ctx context.Context) (map[string][]VirtualMachineDetail, error) {
	list, err := c.list(ctx, virtualMachineGVK)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]VirtualMachineDetail{}
	for i := range list.Items {
		item := &list.Items[i]
		vm := VirtualMachineDetail{
			// Virtual machines are grouped by their namespace, which the
			// virtualization platform scopes per cluster.
			ClusterID: item.GetNamespace(),
			Name:      item.GetName(),
		}
		vm.Running, _, _ = unstructured.NestedBool(item.Object, "status", "ready")
		grouped[vm.ClusterID] = append(grouped[vm.ClusterID], vm)
	}
	return grouped, nil
}
