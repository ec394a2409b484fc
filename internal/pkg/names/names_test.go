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

package names

import (
	"regexp"
	"strings"
	"testing"
)

var safePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestToSafeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already safe",
			input:    "my-app",
			expected: "my-app",
		},
		{
			name:     "uppercase is lowered",
			input:    "My-App",
			expected: "my-app",
		},
		{
			name:     "unsafe characters become hyphens",
			input:    "my app/v2",
			expected: "my-app-v2",
		},
		{
			name:     "repeated hyphens collapse",
			input:    "my---app",
			expected: "my-app",
		},
		{
			name:     "leading and trailing junk is stripped",
			input:    "--my-app!!",
			expected: "my-app",
		},
		{
			name:     "empty input falls back to placeholder",
			input:    "",
			expected: Placeholder,
		},
		{
			name:     "only unsafe characters fall back to placeholder",
			input:    "!!!///",
			expected: Placeholder,
		},
		{
			name:     "dots become hyphens",
			input:    "repo.example.com",
			expected: "repo-example-com",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToSafeName(tc.input)
			if got != tc.expected {
				t.Errorf("ToSafeName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestToSafeNameProperties(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"A B C",
		strings.Repeat("x", 200),
		strings.Repeat("x-", 100),
		"!@#$%^&*()",
		"UPPER.lower_mixed/слово",
		strings.Repeat("y", 62) + "-z",
	}

	for _, in := range inputs {
		got := ToSafeName(in)
		if len(got) > MaxLength {
			t.Errorf("ToSafeName(%q) has length %d > %d", in, len(got), MaxLength)
		}
		if got != Placeholder && !safePattern.MatchString(got) {
			t.Errorf("ToSafeName(%q) = %q does not match the safe pattern", in, got)
		}
	}
}

func TestToSafeNameTruncationStripsTrailingHyphen(t *testing.T) {
	// 63rd character lands on a hyphen after truncation.
	in := strings.Repeat("a", 62) + "-bcdef"
	got := ToSafeName(in)
	if strings.HasSuffix(got, "-") {
		t.Errorf("ToSafeName(%q) = %q has a trailing hyphen", in, got)
	}
	if len(got) > MaxLength {
		t.Errorf("length %d > %d", len(got), MaxLength)
	}
}

func TestToStableSafeName(t *testing.T) {
	t.Run("short names pass through", func(t *testing.T) {
		if got := ToStableSafeName("My App", 50); got != "my-app" {
			t.Errorf("got %q, want %q", got, "my-app")
		}
	})

	t.Run("over-length names keep the limit", func(t *testing.T) {
		got := ToStableSafeName(strings.Repeat("a", 120), 50)
		if len(got) != 50 {
			t.Errorf("got length %d, want 50", len(got))
		}
		if !safePattern.MatchString(got) {
			t.Errorf("got %q, does not match the safe pattern", got)
		}
	})

	t.Run("shared prefixes stay distinct", func(t *testing.T) {
		prefix := strings.Repeat("a", 63)
		one := ToStableSafeName(prefix+"-cluster-one", 50)
		two := ToStableSafeName(prefix+"-cluster-two", 50)
		if one == two {
			t.Errorf("expected distinct names, both are %q", one)
		}
		if len(one) > 50 || len(two) > 50 {
			t.Errorf("lengths %d/%d exceed 50", len(one), len(two))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		in := strings.Repeat("deployment-", 10) + "c-m-abcdef123456"
		if ToStableSafeName(in, 50) != ToStableSafeName(in, 50) {
			t.Error("expected identical outputs for identical inputs")
		}
	})

	t.Run("empty input falls back to placeholder", func(t *testing.T) {
		if got := ToStableSafeName("///", 50); got != Placeholder {
			t.Errorf("got %q, want %q", got, Placeholder)
		}
	})
}
