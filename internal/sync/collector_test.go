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
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/rancher"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// fakeTopologyClient is an in-memory TopologyClient for tests. Any nil-able
// error field set makes the corresponding call fail.
type fakeTopologyClient struct {
	details    []rancher.ClusterDetail
	detailsErr error

	nodes    map[string][]rancher.NodeDetail
	nodesErr error

	machineDeployments map[string][]rancher.MachineDeploymentDetail
	versions           map[string]string
	virtualMachines    map[string][]rancher.VirtualMachineDetail

	clusterNodes    map[string][]rancher.NodeDetail
	clusterNodesErr error
}

func (f *fakeTopologyClient) ListClusterDetails(_ context.Context) ([]rancher.ClusterDetail, error) {
	return f.details, f.detailsErr
}

func (f *fakeTopologyClient) ListNodesDetailed(_ context.Context) (map[string][]rancher.NodeDetail, error) {
	return f.nodes, f.nodesErr
}

func (f *fakeTopologyClient) ListMachineDeploymentGroups(_ context.Context) (map[string][]rancher.MachineDeploymentDetail, error) {
	return f.machineDeployments, nil
}

func (f *fakeTopologyClient) ListClusterVersions(_ context.Context) (map[string]string, error) {
	return f.versions, nil
}

func (f *fakeTopologyClient) ListVirtualMachineGroups(_ context.Context) (map[string][]rancher.VirtualMachineDetail, error) {
	return f.virtualMachines, nil
}

func (f *fakeTopologyClient) ListClusterNodes(_ context.Context, clusterID string) ([]rancher.NodeDetail, error) {
	if f.clusterNodesErr != nil {
		return nil, f.clusterNodesErr
	}
	return f.clusterNodes[clusterID], nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestFriendlyNameResolution(t *testing.T) {
	testcases := []struct {
		name     string
		detail   rancher.ClusterDetail
		expected string
	}{
		{
			name: "display name annotation wins",
			detail: rancher.ClusterDetail{
				ID:          "c-m-abc",
				DisplayName: "manager-name",
				Annotations: map[string]string{
					fleetv1alpha1.AnnotationClusterDisplayName: "annotated-name",
				},
			},
			expected: "annotated-name",
		},
		{
			name: "manager display name second",
			detail: rancher.ClusterDetail{
				ID:          "c-m-abc",
				DisplayName: "manager-name",
				Annotations: map[string]string{
					fleetv1alpha1.AnnotationHarvesterDisplayName: "vm-name",
				},
			},
			expected: "manager-name",
		},
		{
			name: "virtualization override third",
			detail: rancher.ClusterDetail{
				ID: "c-m-abc",
				Annotations: map[string]string{
					fleetv1alpha1.AnnotationHarvesterDisplayName: "vm-name",
				},
			},
			expected: "vm-name",
		},
		{
			name:     "raw id last",
			detail:   rancher.ClusterDetail{ID: "c-m-abc"},
			expected: "c-m-abc",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			if name := friendlyNameOf(testcase.detail); name != testcase.expected {
				t.Errorf("Expected %q, got %q.", testcase.expected, name)
			}
		})
	}
}

func TestCollectTopology(t *testing.T) {
	client := &fakeTopologyClient{
		details: []rancher.ClusterDetail{
			{ID: "c-m-abc", DisplayName: "prod-eu", Driver: "rke2", KubernetesVersion: "v1.30.2"},
		},
		nodes: map[string][]rancher.NodeDetail{
			"c-m-abc": {
				{ClusterID: "c-m-abc", Name: "node-1", Ready: true, KubeletVersion: "v1.30.2"},
				{ClusterID: "c-m-abc", Name: "node-2", Ready: false},
			},
		},
		versions: map[string]string{"c-m-abc": "v1.30.2"},
	}

	topo := CollectTopology(context.Background(), testLogger(), client)

	if topo.Degraded() {
		t.Fatal("Expected topology to not be degraded.")
	}
	if name := topo.FriendlyName("c-m-abc"); name != "prod-eu" {
		t.Errorf("Expected friendly name %q, got %q.", "prod-eu", name)
	}

	stats := topo.Stats("c-m-abc")
	if stats == nil {
		t.Fatal("Expected stats for known cluster.")
	}
	if stats.NodeCount != 2 {
		t.Errorf("Expected 2 nodes, got %d.", stats.NodeCount)
	}
	if stats.ReadyNodeCount != 1 {
		t.Errorf("Expected 1 ready node, got %d.", stats.ReadyNodeCount)
	}
	if stats.Driver != "rke2" {
		t.Errorf("Expected driver rke2, got %q.", stats.Driver)
	}
}

func TestCollectTopologyPartialFailure(t *testing.T) {
	client := &fakeTopologyClient{
		details: []rancher.ClusterDetail{
			{ID: "c-m-abc", DisplayName: "prod-eu"},
		},
		nodesErr: errors.New("nodes forbidden"),
	}

	topo := CollectTopology(context.Background(), testLogger(), client)

	if topo.Degraded() {
		t.Fatal("A single failing inventory call must not degrade the topology.")
	}
	if name := topo.FriendlyName("c-m-abc"); name != "prod-eu" {
		t.Errorf("Expected friendly name %q, got %q.", "prod-eu", name)
	}
	if stats := topo.Stats("c-m-abc"); stats == nil || stats.NodeCount != 0 {
		t.Errorf("Expected zero node count from failed node listing, got %+v.", stats)
	}
}

func TestCollectTopologyDegraded(t *testing.T) {
	client := &fakeTopologyClient{
		detailsErr: errors.New("management API unreachable"),
		clusterNodes: map[string][]rancher.NodeDetail{
			"downstream-1-abcdef123456": {
				{ClusterID: "downstream-1-abcdef123456", Name: "node-1", Ready: true, KubeletVersion: "v1.29.0"},
			},
		},
	}

	topo := CollectTopology(context.Background(), testLogger(), client)

	if !topo.Degraded() {
		t.Fatal("Expected topology to be degraded.")
	}

	topo.CollectFallback(context.Background(), "downstream-1-abcdef123456")

	stats := topo.Stats("downstream-1-abcdef123456")
	if stats == nil {
		t.Fatal("Expected fallback stats for cluster.")
	}
	if stats.NodeCount != 1 || stats.ReadyNodeCount != 1 {
		t.Errorf("Expected 1/1 nodes, got %d/%d.", stats.ReadyNodeCount, stats.NodeCount)
	}
	if stats.KubernetesVersion != "v1.29.0" {
		t.Errorf("Expected kubelet-derived version, got %q.", stats.KubernetesVersion)
	}
}

func TestLookupNameShortName(t *testing.T) {
	client := &fakeTopologyClient{
		details: []rancher.ClusterDetail{
			{ID: "downstream-1", DisplayName: "Downstream One"},
		},
	}

	topo := CollectTopology(context.Background(), testLogger(), client)

	name, ok := topo.LookupName("downstream-1-abcdef123456")
	if !ok {
		t.Fatal("Expected a short-name map hit.")
	}
	if name != "Downstream One" {
		t.Errorf("Expected %q, got %q.", "Downstream One", name)
	}

	if _, ok := topo.LookupName("unknown-cluster"); ok {
		t.Error("Expected no map hit for unknown cluster.")
	}
}

func TestWorkspaceRegistry(t *testing.T) {
	topo := CollectTopology(context.Background(), testLogger(), &fakeTopologyClient{})

	// Unknown clusters default to the engine's default workspace.
	if ws := topo.PrimaryWorkspace("c-m-abc"); ws != fleetv1alpha1.DefaultWorkspace {
		t.Errorf("Expected default workspace, got %q.", ws)
	}

	topo.RegisterWorkspace("c-m-abc", "team-a")
	topo.RegisterWorkspace("c-m-abc", "team-b")
	topo.RegisterWorkspace("c-m-abc", "team-a")

	if ws := topo.PrimaryWorkspace("c-m-abc"); ws != "team-a" {
		t.Errorf("Expected first-seen workspace team-a, got %q.", ws)
	}

	topo.RegisterWorkspace("c-m-abc", fleetv1alpha1.DefaultWorkspace)

	if ws := topo.PrimaryWorkspace("c-m-abc"); ws != fleetv1alpha1.DefaultWorkspace {
		t.Errorf("Expected default workspace to take precedence, got %q.", ws)
	}
}

func TestRegisterNameDoesNotOverrideInventory(t *testing.T) {
	client := &fakeTopologyClient{
		details: []rancher.ClusterDetail{
			{ID: "c-m-abc", DisplayName: "inventory-name"},
		},
	}

	topo := CollectTopology(context.Background(), testLogger(), client)

	topo.RegisterName("c-m-abc", "engine-name")
	topo.RegisterName("c-m-def", "engine-only")

	if name := topo.FriendlyName("c-m-abc"); name != "inventory-name" {
		t.Errorf("Expected inventory name to win, got %q.", name)
	}
	if name := topo.FriendlyName("c-m-def"); name != "engine-only" {
		t.Errorf("Expected registered name, got %q.", name)
	}
}
