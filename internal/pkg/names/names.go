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

// Package names converts arbitrary upstream names into stable,
// collision-resistant catalog-safe identifiers.
package names

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// MaxLength is the longest name the catalog accepts.
const MaxLength = 63

// Placeholder is returned when sanitization leaves nothing usable.
const Placeholder = "fleet-entity"

const hashSuffixLen = 6

var (
	unsafeChars     = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// ToSafeName converts raw into a catalog-safe name: lowercase alphanumeric
// segments joined by single hyphens, at most MaxLength characters, never
// empty. Deterministic and total.
func ToSafeName(raw string) string {
	name := sanitize(raw)
	if len(name) > MaxLength {
		name = strings.TrimRight(name[:MaxLength], "-")
	}
	if name == "" {
		return Placeholder
	}
	return name
}

// ToStableSafeName is ToSafeName with a custom length limit and a hashing
// fallback: over-length inputs are truncated to maxLen-7 and suffixed with
// the first 6 hex digits of a digest of the full sanitized value, so two
// long names sharing a prefix still map to distinct outputs.
func ToStableSafeName(raw string, maxLen int) string {
	name := sanitize(raw)
	if name == "" {
		return Placeholder
	}
	if len(name) <= maxLen {
		return name
	}

	sum := sha256.Sum256([]byte(name))
	suffix := hex.EncodeToString(sum[:])[:hashSuffixLen]

	cut := maxLen - hashSuffixLen - 1
	if cut < 1 {
		cut = 1
	}
	return strings.TrimRight(name[:cut], "-") + "-" + suffix
}

func sanitize(raw string) string {
	name := strings.ToLower(raw)
	name = unsafeChars.ReplaceAllString(name, "-")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
