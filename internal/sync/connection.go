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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fleetcatalog/fleet-catalog-manager/pkg/apis/catalog"
)

// Connection delivers finished full-snapshot mutations to the catalog. The
// provider holds exactly one connection and refuses to run without it.
type Connection interface {
	ApplyMutation(ctx context.Context, mutation *catalog.FullMutation) error
}

// HTTPConnection posts mutations as JSON to a catalog ingestion endpoint.
type HTTPConnection struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPConnection returns a connection posting to the given endpoint,
// authenticating with the bearer token when one is set.
func NewHTTPConnection(endpoint, token string) *HTTPConnection {
	return &HTTPConnection{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPConnection) ApplyMutation(ctx context.Context, mutation *catalog.FullMutation) error {
	body, err := json.Marshal(mutation)
	if err != nil {
		return fmt.Errorf("failed to encode mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post mutation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog endpoint returned HTTP %d", resp.StatusCode)
	}

	return nil
}

// WriterConnection writes mutations as indented JSON, one document per
// pass. Useful with stdout for inspection and in tests.
type WriterConnection struct {
	w io.Writer
}

func NewWriterConnection(w io.Writer) *WriterConnection {
	return &WriterConnection{w: w}
}

func (c *WriterConnection) ApplyMutation(_ context.Context, mutation *catalog.FullMutation) error {
	enc := json.NewEncoder(c.w)
	enc.SetIndent("", "  ")
	return enc.Encode(mutation)
}
