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

// Package config holds the sync configuration: the management clusters to
// scan, their scan scope and the per-cluster behavior flags.
//
// A minimal configuration file looks like:
//
//	concurrency: 3
//	clusters:
//	  - name: rancher-prod
//	    url: https://rancher.example.com
//	    token: <bearer token>
//	    namespaces:
//	      - name: fleet-default
package config

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// DefaultConcurrency bounds the per-cluster fan-out of one sync pass.
const DefaultConcurrency = 3

// NamespaceConfig is one namespace to scan for GitRepos, optionally
// restricted by a label selector.
type NamespaceConfig struct {
	Name          string `json:"name"`
	LabelSelector string `json:"labelSelector,omitempty"`
}

// ClusterConfig describes one management cluster running the GitOps engine.
type ClusterConfig struct {
	// Name identifies the cluster in entity names and the sync location.
	Name string `json:"name"`
	// URL is the API endpoint of the management cluster.
	URL string `json:"url"`
	// Token is the bearer token used to authenticate.
	Token string `json:"token,omitempty"`
	// TokenFile is read instead of Token when set.
	TokenFile string `json:"tokenFile,omitempty"`
	// InsecureSkipTLSVerify disables TLS certificate verification.
	InsecureSkipTLSVerify bool `json:"insecureSkipTLSVerify,omitempty"`
	// Namespaces are scanned for GitRepos. Defaults to the engine's default
	// workspace when empty.
	Namespaces []NamespaceConfig `json:"namespaces,omitempty"`

	// IncludeBundles emits a Component per Bundle. Defaults to true.
	IncludeBundles *bool `json:"includeBundles,omitempty"`
	// IncludeDeploymentRecords emits a Resource per BundleDeployment.
	// Defaults to true.
	IncludeDeploymentRecords *bool `json:"includeDeploymentRecords,omitempty"`
	// GenerateAPIs emits API entities from descriptor enrichment. Defaults
	// to true.
	GenerateAPIs *bool `json:"generateApis,omitempty"`
	// FetchDescriptorFile reads the pre-fetched fleet.yaml annotation.
	// Defaults to true.
	FetchDescriptorFile *bool `json:"fetchDescriptorFile,omitempty"`
	// AutoDocRef populates a documentation reference from the repo URL when
	// none is set explicitly. Defaults to true.
	AutoDocRef *bool `json:"autoDocRef,omitempty"`
	// IncludeNodes emits a Resource per discovered node. Defaults to false.
	IncludeNodes *bool `json:"includeNodes,omitempty"`
}

// Config is the full sync configuration.
type Config struct {
	// Concurrency bounds how many clusters are fetched at once.
	Concurrency int `json:"concurrency,omitempty"`
	// Clusters are the management clusters to reconcile.
	Clusters []ClusterConfig `json:"clusters"`
}

// Load reads, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default fills unset fields with their defaults.
func (c *Config) Default() {
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	for i := range c.Clusters {
		if len(c.Clusters[i].Namespaces) == 0 {
			c.Clusters[i].Namespaces = []NamespaceConfig{{Name: "fleet-default"}}
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be a non-negative number")
	}
	if len(c.Clusters) == 0 {
		return fmt.Errorf("at least one cluster must be configured")
	}

	seen := map[string]bool{}
	for i := range c.Clusters {
		cluster := &c.Clusters[i]
		if cluster.Name == "" {
			return fmt.Errorf("cluster %d: name cannot be empty", i)
		}
		if seen[cluster.Name] {
			return fmt.Errorf("cluster %q is configured twice", cluster.Name)
		}
		seen[cluster.Name] = true

		if cluster.URL == "" {
			return fmt.Errorf("cluster %q: url cannot be empty", cluster.Name)
		}
		if cluster.Token != "" && cluster.TokenFile != "" {
			return fmt.Errorf("cluster %q: token and tokenFile are mutually exclusive", cluster.Name)
		}
		for _, ns := range cluster.Namespaces {
			if ns.Name == "" {
				return fmt.Errorf("cluster %q: namespace name cannot be empty", cluster.Name)
			}
		}
	}

	return nil
}

// BearerToken resolves the bearer token for the cluster.
func (c *ClusterConfig) BearerToken() (string, error) {
	if c.TokenFile != "" {
		raw, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read token file for cluster %q: %w", c.Name, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return c.Token, nil
}

func boolDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// BundlesEnabled reports whether Components are emitted for this cluster.
func (c *ClusterConfig) BundlesEnabled() bool { return boolDefault(c.IncludeBundles, true) }

// DeploymentRecordsEnabled reports whether deployment Resources are emitted.
func (c *ClusterConfig) DeploymentRecordsEnabled() bool {
	return boolDefault(c.IncludeDeploymentRecords, true)
}

// APIsEnabled reports whether API entities are emitted.
func (c *ClusterConfig) APIsEnabled() bool { return boolDefault(c.GenerateAPIs, true) }

// DescriptorEnabled reports whether the descriptor annotation is read.
func (c *ClusterConfig) DescriptorEnabled() bool { return boolDefault(c.FetchDescriptorFile, true) }

// AutoDocRefEnabled reports whether documentation references are derived.
func (c *ClusterConfig) AutoDocRefEnabled() bool { return boolDefault(c.AutoDocRef, true) }

// NodesEnabled reports whether node Resources are emitted.
func (c *ClusterConfig) NodesEnabled() bool { return boolDefault(c.IncludeNodes, false) }
