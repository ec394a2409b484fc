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
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestClusterDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cluster  *Cluster
		expected string
	}{
		{
			name: "annotation wins",
			cluster: &Cluster{
				ObjectMeta: metav1.ObjectMeta{
					Name: "c-m-abc",
					Annotations: map[string]string{
						AnnotationClusterDisplayName: "annotated",
					},
					Labels: map[string]string{
						LabelManagedClusterDisplayName: "labelled",
					},
				},
			},
			expected: "annotated",
		},
		{
			name: "manager label second",
			cluster: &Cluster{
				ObjectMeta: metav1.ObjectMeta{
					Name: "c-m-abc",
					Labels: map[string]string{
						LabelManagedClusterDisplayName: "labelled",
					},
					Annotations: map[string]string{
						AnnotationHarvesterDisplayName: "virtualized",
					},
				},
			},
			expected: "labelled",
		},
		{
			name: "virtualization override third",
			cluster: &Cluster{
				ObjectMeta: metav1.ObjectMeta{
					Name: "c-m-abc",
					Annotations: map[string]string{
						AnnotationHarvesterDisplayName: "virtualized",
					},
				},
			},
			expected: "virtualized",
		},
		{
			name: "object name last",
			cluster: &Cluster{
				ObjectMeta: metav1.ObjectMeta{Name: "c-m-abc"},
			},
			expected: "c-m-abc",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.cluster.DisplayName(); got != test.expected {
				t.Errorf("Expected %q, got %q.", test.expected, got)
			}
		})
	}
}

func TestBundleDeploymentDisplayState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bd       *BundleDeployment
		expected string
	}{
		{
			name: "upstream state wins",
			bd: &BundleDeployment{
				Status: BundleDeploymentStatus{
					Ready:   true,
					Display: BundleDeploymentDisplay{State: "Modified"},
				},
			},
			expected: "Modified",
		},
		{
			name: "ready flag fallback",
			bd: &BundleDeployment{
				Status: BundleDeploymentStatus{Ready: true},
			},
			expected: "Ready",
		},
		{
			name:     "not ready fallback",
			bd:       &BundleDeployment{},
			expected: "NotReady",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.bd.DisplayState(); got != test.expected {
				t.Errorf("Expected %q, got %q.", test.expected, got)
			}
		})
	}
}

func TestBundleReleaseName(t *testing.T) {
	t.Parallel()

	bundle := &Bundle{}
	if got := bundle.ReleaseName(); got != "" {
		t.Errorf("Expected empty release name without helm options, got %q.", got)
	}

	bundle.Spec.Helm = &HelmOptions{ReleaseName: "storefront"}
	if got := bundle.ReleaseName(); got != "storefront" {
		t.Errorf("Expected storefront, got %q.", got)
	}
}
