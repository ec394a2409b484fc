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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fclog "github.com/fleetcatalog/fleet-catalog-manager/internal/pkg/log"
)

func main() {
	logFlags := fclog.NewDefaultOptions()

	rootCmd := &cobra.Command{
		Use:           "fleet-catalog-manager",
		Short:         "Synchronizes Fleet deployment state into a software catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logFlags.Validate()
		},
	}
	logFlags.AddPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		runCommand(&logFlags),
		versionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
