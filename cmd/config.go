package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/pratapsingh123om/wqam-dashboard/internal/config"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		if configInit {
			if err := cfgpkg.Save(cfg, cfgFile); err != nil {
				return err
			}
			fmt.Println("✓ Config written")
			return nil
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "write the effective config to disk")
	rootCmd.AddCommand(configCmd)
}
