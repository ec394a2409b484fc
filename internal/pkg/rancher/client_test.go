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
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	ctrlruntimeclient "sigs.k8s.io/controller-runtime/pkg/client"
	fakectrlruntimeclient "sigs.k8s.io/controller-runtime/pkg/client/fake"
)

var inventoryKinds = []schema.GroupVersionKind{
	{Group: "management.cattle.io", Version: "v3", Kind: "Cluster"},
	{Group: "management.cattle.io", Version: "v3", Kind: "Node"},
	{Group: "cluster.x-k8s.io", Version: "v1beta1", Kind: "MachineDeployment"},
	{Group: "kubevirt.io", Version: "v1", Kind: "VirtualMachine"},
}

func newTestClient(t *testing.T, objects ...*unstructured.Unstructured) *Client {
	t.Helper()

	scheme := runtime.NewScheme()
	for _, gvk := range inventoryKinds {
		scheme.AddKnownTypeWithName(gvk, &unstructured.Unstructured{})
		scheme.AddKnownTypeWithName(gvk.GroupVersion().WithKind(gvk.Kind+"List"), &unstructured.UnstructuredList{})
	}

	clientObjects := make([]ctrlruntimeclient.Object, 0, len(objects))
	for _, obj := range objects {
		clientObjects = append(clientObjects, obj)
	}

	return NewFromReader(fakectrlruntimeclient.
		NewClientBuilder().
		WithScheme(scheme).
		WithObjects(clientObjects...).
		Build())
}

func managementCluster(name, displayName, driver, version string) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"spec": map[string]interface{}{
				"displayName": displayName,
			},
			"status": map[string]interface{}{
				"driver": driver,
				"version": map[string]interface{}{
					"gitVersion": version,
				},
				"conditions": []interface{}{
					map[string]interface{}{"type": "Ready", "status": "True"},
				},
			},
		},
	}
	obj.SetGroupVersionKind(schema.GroupVersionKind{Group: "management.cattle.io", Version: "v3", Kind: "Cluster"})
	obj.SetName(name)
	return obj
}

func managementNode(clusterID, name, kubeletVersion string, worker, ready bool) *unstructured.Unstructured {
	readyStatus := "False"
	if ready {
		readyStatus = "True"
	}
	obj := &unstructured.Unstructured{
		Object: map[string]interface{}{
			"spec": map[string]interface{}{
				"worker": worker,
			},
			"status": map[string]interface{}{
				"internalNodeStatus": map[string]interface{}{
					"nodeInfo": map[string]interface{}{
						"kubeletVersion": kubeletVersion,
					},
				},
				"conditions": []interface{}{
					map[string]interface{}{"type": "Ready", "status": readyStatus},
				},
			},
		},
	}
	obj.SetGroupVersionKind(schema.GroupVersionKind{Group: "management.cattle.io", Version: "v3", Kind: "Node"})
	obj.SetNamespace(clusterID)
	obj.SetName(name)
	return obj
}

func TestListClusterDetails(t *testing.T) {
	client := newTestClient(t,
		managementCluster("c-m-abc", "prod-eu", "rke2", "v1.30.2"),
		managementCluster("c-m-def", "staging", "imported", "v1.29.5"),
	)

	details, err := client.ListClusterDetails(context.Background())
	if err != nil {
		t.Fatalf("Failed to list cluster details: %v.", err)
	}
	if len(details) != 2 {
		t.Fatalf("Expected 2 clusters, got %d.", len(details))
	}

	byID := map[string]ClusterDetail{}
	for _, d := range details {
		byID[d.ID] = d
	}

	prod := byID["c-m-abc"]
	if prod.DisplayName != "prod-eu" {
		t.Errorf("Expected display name prod-eu, got %q.", prod.DisplayName)
	}
	if prod.Driver != "rke2" {
		t.Errorf("Expected driver rke2, got %q.", prod.Driver)
	}
	if prod.KubernetesVersion != "v1.30.2" {
		t.Errorf("Expected version v1.30.2, got %q.", prod.KubernetesVersion)
	}
	if len(prod.Conditions) != 1 || prod.Conditions[0].Type != "Ready" {
		t.Errorf("Expected a Ready condition, got %v.", prod.Conditions)
	}
}

func TestListNodesDetailed(t *testing.T) {
	client := newTestClient(t,
		managementNode("c-m-abc", "node-1", "v1.30.2", true, true),
		managementNode("c-m-abc", "node-2", "v1.30.2", true, false),
		managementNode("c-m-def", "node-1", "v1.29.5", false, true),
	)

	grouped, err := client.ListNodesDetailed(context.Background())
	if err != nil {
		t.Fatalf("Failed to list nodes: %v.", err)
	}

	if len(grouped["c-m-abc"]) != 2 {
		t.Errorf("Expected 2 nodes for c-m-abc, got %d.", len(grouped["c-m-abc"]))
	}
	if len(grouped["c-m-def"]) != 1 {
		t.Errorf("Expected 1 node for c-m-def, got %d.", len(grouped["c-m-def"]))
	}

	ready := 0
	for _, node := range grouped["c-m-abc"] {
		if node.Ready {
			ready++
		}
		if node.KubeletVersion != "v1.30.2" {
			t.Errorf("Expected kubelet version to be parsed, got %q.", node.KubeletVersion)
		}
		if len(node.Roles) != 1 || node.Roles[0] != "worker" {
			t.Errorf("Expected worker role, got %v.", node.Roles)
		}
	}
	if ready != 1 {
		t.Errorf("Expected 1 ready node, got %d.", ready)
	}
}

func TestListClusterNodesScopesToCluster(t *testing.T) {
	client := newTestClient(t,
		managementNode("c-m-abc", "node-1", "v1.30.2", true, true),
		managementNode("c-m-def", "node-1", "v1.29.5", true, true),
	)

	nodes, err := client.ListClusterNodes(context.Background(), "c-m-abc")
	if err != nil {
		t.Fatalf("Failed to list cluster nodes: %v.", err)
	}

	if len(nodes) != 1 || nodes[0].ClusterID != "c-m-abc" {
		t.Errorf("Expected only nodes of c-m-abc, got %v.", nodes)
	}
}

func TestListClusterVersions(t *testing.T) {
	client := newTestClient(t,
		managementCluster("c-m-abc", "prod-eu", "rke2", "v1.30.2"),
	)

	versions, err := client.ListClusterVersions(context.Background())
	if err != nil {
		t.Fatalf("Failed to list cluster versions: %v.", err)
	}

	if versions["c-m-abc"] != "v1.30.2" {
		t.Errorf("Expected version map entry, got %v.", versions)
	}
}
