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

// Package sync reconciles the declarative state of one or more Fleet
// management clusters into a normalized catalog entity graph.
//
// One run produces one full-snapshot mutation:
//   - GitRepos become Systems, Bundles become Components, BundleDeployments
//     and downstream clusters become Resources, descriptor enrichment
//     becomes APIs, and each management cluster becomes a Domain.
//   - Per-cluster fetches run concurrently under a configurable bound;
//     inside one cluster the namespace/repo/bundle fetches are sequential.
//   - Upstream failures degrade the affected slice and the pass continues;
//     only a failure of the merge/emit phase aborts the pass, in which case
//     no mutation is emitted at all.
//
// Key mapping rules:
// - Deterministic catalog-safe naming with a hashing fallback for
//   over-length deployment names
// - Relation edges from label-based associations, declared dependencies and
//   namespace-encoded workspace membership
// - Descriptor (fleet.yaml) annotation overrides always win over computed
//   defaults
// - First-seen entity wins on (kind, namespace, name) collisions
package sync
