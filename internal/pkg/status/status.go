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

// Package status ranks the GitOps engine's per-resource status vocabulary by
// severity and maps it onto coarse catalog lifecycle stages.
package status

// Known upstream states, best to worst.
const (
	StateReady       = "Ready"
	StateNotReady    = "NotReady"
	StatePending     = "Pending"
	StateOutOfSync   = "OutOfSync"
	StateModified    = "Modified"
	StateWaitApplied = "WaitApplied"
	StateErrApplied  = "ErrApplied"
)

// Lifecycle stages assigned to entities.
const (
	LifecycleProduction   = "production"
	LifecycleExperimental = "experimental"
	LifecycleDeprecated   = "deprecated"
)

// unknownPriority ranks any unrecognized state worse than all known ones.
const unknownPriority = 99

var statePriority = map[string]int{
	StateReady:       0,
	StateNotReady:    1,
	StatePending:     2,
	StateOutOfSync:   3,
	StateModified:    4,
	StateWaitApplied: 5,
	StateErrApplied:  6,
}

// Priority returns the severity rank of a state; unrecognized states rank
// worst.
func Priority(state string) int {
	if p, ok := statePriority[state]; ok {
		return p
	}
	return unknownPriority
}

// WorstOf folds states to the single worst one. Empty entries are skipped,
// and an input with no usable entries folds to Ready.
func WorstOf(states []string) string {
	worst := StateReady
	worstPriority := -1

	for _, s := range states {
		if s == "" {
			continue
		}
		if p := Priority(s); p > worstPriority {
			worst = s
			worstPriority = p
		}
	}

	return worst
}

// ToLifecycle maps a state onto a lifecycle stage. Unknown or absent states
// map to production: evolving upstream vocabulary must never surface as an
// alarming "deprecated" label.
func ToLifecycle(state string) string {
	switch state {
	case StateReady, "":
		return LifecycleProduction
	case StatePending, StateWaitApplied:
		return LifecycleExperimental
	case StateNotReady, StateOutOfSync, StateModified, StateErrApplied:
		return LifecycleDeprecated
	default:
		return LifecycleProduction
	}
}
