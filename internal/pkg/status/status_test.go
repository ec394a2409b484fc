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

package status

import "testing"

func TestWorstOf(t *testing.T) {
	tests := []struct {
		name     string
		states   []string
		expected string
	}{
		{
			name:     "empty input defaults to Ready",
			states:   nil,
			expected: StateReady,
		},
		{
			name:     "entirely absent entries default to Ready",
			states:   []string{"", ""},
			expected: StateReady,
		},
		{
			name:     "worst known state wins",
			states:   []string{StateReady, StateErrApplied, StatePending},
			expected: StateErrApplied,
		},
		{
			name:     "empty entries are skipped not defaulted",
			states:   []string{"", StatePending, ""},
			expected: StatePending,
		},
		{
			name:     "unrecognized state ranks worse than all known",
			states:   []string{StateErrApplied, "GitUpdating"},
			expected: "GitUpdating",
		},
		{
			name:     "single ready",
			states:   []string{StateReady},
			expected: StateReady,
		},
		{
			name:     "modified beats out-of-sync",
			states:   []string{StateOutOfSync, StateModified},
			expected: StateModified,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WorstOf(tc.states); got != tc.expected {
				t.Errorf("WorstOf(%v) = %q, want %q", tc.states, got, tc.expected)
			}
		})
	}
}

func TestPriorityOrdering(t *testing.T) {
	ordered := []string{
		StateReady, StateNotReady, StatePending, StateOutOfSync,
		StateModified, StateWaitApplied, StateErrApplied,
	}
	for i := 1; i < len(ordered); i++ {
		if Priority(ordered[i-1]) >= Priority(ordered[i]) {
			t.Errorf("expected %s to rank better than %s", ordered[i-1], ordered[i])
		}
	}
	if Priority("SomethingNew") <= Priority(StateErrApplied) {
		t.Error("unrecognized state must rank worse than ErrApplied")
	}
}

func TestToLifecycle(t *testing.T) {
	tests := []struct {
		state    string
		expected string
	}{
		{StateReady, LifecycleProduction},
		{"", LifecycleProduction},
		{"GitUpdating", LifecycleProduction},
		{StatePending, LifecycleExperimental},
		{StateWaitApplied, LifecycleExperimental},
		{StateNotReady, LifecycleDeprecated},
		{StateOutOfSync, LifecycleDeprecated},
		{StateModified, LifecycleDeprecated},
		{StateErrApplied, LifecycleDeprecated},
	}

	for _, tc := range tests {
		if got := ToLifecycle(tc.state); got != tc.expected {
			t.Errorf("ToLifecycle(%q) = %q, want %q", tc.state, got, tc.expected)
		}
	}
}
