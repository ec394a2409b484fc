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
	"testing"
)

func TestParseClusterNamespace(t *testing.T) {
	testcases := []struct {
		name              string
		namespace         string
		expectedWorkspace string
		expectedCluster   string
		expectedOK        bool
	}{
		{
			name:              "default workspace",
			namespace:         "cluster-fleet-default-downstream-1-abcdef123456",
			expectedWorkspace: "fleet-default",
			expectedCluster:   "downstream-1-abcdef123456",
			expectedOK:        true,
		},
		{
			name:              "local workspace",
			namespace:         "cluster-fleet-local-local-0123456789ab",
			expectedWorkspace: "fleet-local",
			expectedCluster:   "local-0123456789ab",
			expectedOK:        true,
		},
		{
			name:              "custom workspace with suffixed cluster id",
			namespace:         "cluster-teama-prod-eu-abcdefabcdef",
			expectedWorkspace: "teama",
			expectedCluster:   "prod-eu-abcdefabcdef",
			expectedOK:        true,
		},
		{
			name:              "custom workspace without suffix pattern",
			namespace:         "cluster-staging-mycluster",
			expectedWorkspace: "staging",
			expectedCluster:   "mycluster",
			expectedOK:        true,
		},
		{
			name:       "not a cluster namespace",
			namespace:  "fleet-default",
			expectedOK: false,
		},
		{
			name:       "prefix only",
			namespace:  "cluster-",
			expectedOK: false,
		},
		{
			name:       "empty",
			namespace:  "",
			expectedOK: false,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			workspace, clusterID, ok := ParseClusterNamespace(testcase.namespace)

			if ok != testcase.expectedOK {
				t.Fatalf("Expected ok=%v, got %v.", testcase.expectedOK, ok)
			}
			if !ok {
				return
			}
			if workspace != testcase.expectedWorkspace {
				t.Errorf("Expected workspace %q, got %q.", testcase.expectedWorkspace, workspace)
			}
			if clusterID != testcase.expectedCluster {
				t.Errorf("Expected cluster id %q, got %q.", testcase.expectedCluster, clusterID)
			}
		})
	}
}

func TestShortClusterName(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips 12 hex suffix",
			input:    "downstream-1-abcdef123456",
			expected: "downstream-1",
		},
		{
			name:     "no suffix",
			input:    "downstream-1",
			expected: "",
		},
		{
			name:     "suffix too short",
			input:    "cluster-abcdef",
			expected: "",
		},
		{
			name:     "suffix not hex",
			input:    "cluster-abcdefg12345",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			if short := ShortClusterName(testcase.input); short != testcase.expected {
				t.Errorf("Expected %q, got %q.", testcase.expected, short)
			}
		})
	}
}
