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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	ctrlruntimelog "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/config"
	fclog "github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/log"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/metrics"
	"github.com/fleetcatalog/fleet-catalog-manager/internal/sync"
)

type runOptions struct {
	configFile       string
	catalogEndpoint  string
	catalogToken     string
	catalogTokenFile string
	stdout           bool
	metricsAddress   string
	interval         time.Duration
	once             bool
}

func runCommand(logFlags *fclog.Options) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the catalog synchronization loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(logFlags, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Path to the cluster configuration file")
	cmd.Flags().StringVar(&opts.catalogEndpoint, "catalog-endpoint", "", "URL of the catalog ingestion endpoint mutations are posted to")
	cmd.Flags().StringVar(&opts.catalogToken, "catalog-token", "", "Bearer token for the catalog endpoint")
	cmd.Flags().StringVar(&opts.catalogTokenFile, "catalog-token-file", "", "File containing the bearer token for the catalog endpoint")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write mutations to stdout instead of a catalog endpoint")
	cmd.Flags().StringVar(&opts.metricsAddress, "metrics-address", "127.0.0.1:8080", "The address on which Prometheus metrics will be available under /metrics, empty to disable")
	cmd.Flags().DurationVar(&opts.interval, "interval", 5*time.Minute, "Interval between sync passes")
	cmd.Flags().BoolVar(&opts.once, "once", false, "Run a single sync pass and exit")

	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}

	return cmd
}

func runSync(logFlags *fclog.Options, opts *runOptions) error {
	rawLog := fclog.NewFromOptions(*logFlags)
	defer func() {
		_ = rawLog.Sync()
	}()
	log := rawLog.Sugar()
	ctrlruntimelog.SetLogger(zapr.NewLogger(rawLog.WithOptions(zap.AddCallerSkip(1))))

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	conn, err := buildConnection(opts)
	if err != nil {
		return err
	}

	metrics.MustInit()
	if opts.metricsAddress != "" {
		go serveMetrics(log, opts.metricsAddress)
	}

	provider, err := sync.New(log.Named("sync"), cfg, sync.DefaultClientFactory)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	provider.Connect(conn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.once {
		return provider.Run(ctx)
	}

	log.Infow("Starting sync loop", "interval", opts.interval, "clusters", len(cfg.Clusters))

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for {
		if err := provider.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Errorw("Sync pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info("Shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

func buildConnection(opts *runOptions) (sync.Connection, error) {
	if opts.stdout {
		return sync.NewWriterConnection(os.Stdout), nil
	}
	if opts.catalogEndpoint == "" {
		return nil, errors.New("either --catalog-endpoint or --stdout must be set")
	}

	token := opts.catalogToken
	if token == "" && opts.catalogTokenFile != "" {
		raw, err := os.ReadFile(opts.catalogTokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	return sync.NewHTTPConnection(opts.catalogEndpoint, token), nil
}

func serveMetrics(log *zap.SugaredLogger, address string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	log.Infow("Serving metrics", "address", address)
	if err := http.ListenAndServe(address, mux); err != nil {
		log.Errorw("Metrics server failed", zap.Error(err))
	}
}
