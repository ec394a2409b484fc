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

// Package fleetclient reads Fleet resources from a remote management
// cluster. All methods are read-only list calls; the sync never mutates
// upstream state. Errors are returned to the caller so the best-effort
// policy of the sync stays visible at the type level instead of being
// swallowed here.
package fleetclient

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/rest"
	ctrlruntimeclient "sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
	fleetv1alpha1 "github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/fleet/v1alpha1"
)

// Interface is the read-only view of the Fleet resources on one management
// cluster.
type Interface interface {
	ListGitRepos(ctx context.Context, namespace string, selector labels.Selector) ([]fleetv1alpha1.GitRepo, error)
	ListBundles(ctx context.Context, namespace string, selector labels.Selector) ([]fleetv1alpha1.Bundle, error)
	ListBundleDeployments(ctx context.Context, selector labels.Selector) ([]fleetv1alpha1.BundleDeployment, error)
	ListClusters(ctx context.Context) ([]fleetv1alpha1.Cluster, error)
}

// Client implements Interface on top of a controller-runtime client.
type Client struct {
	reader ctrlruntimeclient.Reader
}

var _ Interface = &Client{}

// New builds a client for the given management cluster. Configuration
// errors (bad URL, unreadable token file) surface here; transient API
// failures surface per call.
func New(cluster *config.ClusterConfig) (*Client, error) {
	token, err := cluster.BearerToken()
	if err != nil {
		return nil, err
	}

	restCfg := &rest.Config{
		Host:        cluster.URL,
		BearerToken: token,
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: cluster.InsecureSkipTLSVerify,
		},
	}

	scheme := runtime.NewScheme()
	if err := fleetv1alpha1.AddToScheme(scheme); err != nil {
		return nil, fmt.Errorf("failed to build scheme: %w", err)
	}

	c, err := ctrlruntimeclient.New(restCfg, ctrlruntimeclient.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create client for cluster %q: %w", cluster.Name, err)
	}

	return &Client{reader: c}, nil
}

// NewFromReader wraps an existing reader, used by tests.
func NewFromReader(reader ctrlruntimeclient.Reader) *Client {
	return &Client{reader: reader}
}

func listOptions(namespace string, selector labels.Selector) []ctrlruntimeclient.ListOption {
	opts := []ctrlruntimeclient.ListOption{}
	if namespace != "" {
		opts = append(opts, ctrlruntimeclient.InNamespace(namespace))
	}
	if selector != nil && !selector.Empty() {
		opts = append(opts, ctrlruntimeclient.MatchingLabelsSelector{Selector: selector})
	}
	return opts
}

func (c *Client) ListGitRepos(ctx context.Context, namespace string, selector labels.Selector) ([]fleetv1alpha1.GitRepo, error) {
	list := &fleetv1alpha1.GitRepoList{}
	if err := c.reader.List(ctx, list, listOptions(namespace, selector)...); err != nil {
		return nil, fmt.Errorf("failed to list GitRepos in %q: %w", namespace, err)
	}
	return list.Items, nil
}

func (c *Client) ListBundles(ctx context.Context, namespace string, selector labels.Selector) ([]fleetv1alpha1.Bundle, error) {
	list := &fleetv1alpha1.BundleList{}
	if err := c.reader.List(ctx, list, listOptions(namespace, selector)...); err != nil {
		return nil, fmt.Errorf("failed to list Bundles in %q: %w", namespace, err)
	}
	return list.Items, nil
}

func (c *Client) ListBundleDeployments(ctx context.Context, selector labels.Selector) ([]fleetv1alpha1.BundleDeployment, error) {
	list := &fleetv1alpha1.BundleDeploymentList{}
	if err := c.reader.List(ctx, list, listOptions("", selector)...); err != nil {
		return nil, fmt.Errorf("failed to list BundleDeployments: %w", err)
	}
	return list.Items, nil
}

func (c *Client) ListClusters(ctx context.Context) ([]fleetv1alpha1.Cluster, error) {
	list := &fleetv1alpha1.ClusterList{}
	if err := c.reader.List(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to list Clusters: %w", err)
	}
	return list.Items, nil
}
