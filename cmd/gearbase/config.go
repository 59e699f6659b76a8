// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firstlight/gearbase/internal/config"
	"github.com/firstlight/gearbase/internal/i18n"
)

var configInitSystem bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitSystem, "system", false, "Write to the system config location instead of the user one")
	configCmd.AddCommand(configInitCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// configInitCmd persists the effective configuration, so a setup driven by
// flags or environment variables can be frozen into a file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the standard config location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteConfigFile(&appConfig, configInitSystem); err != nil {
			return err
		}
		fmt.Println(i18n.T("config.written"))
		return nil
	},
}
