package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hookmux/hookmux/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective merged configuration",
	Long: `Show the configuration that results from merging the system, user and
repository scopes, along with the scope files that were consulted.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	scopes, _, err := config.LoadScopes()
	if err != nil {
		return err
	}
	cfg := config.Resolve(scopes...)

	sources := cfg.Sources()
	if len(sources) == 0 {
		fmt.Println("# no scope files found; defaults in effect")
	} else {
		for _, source := range sources {
			fmt.Printf("# scope: %s\n", source)
		}
	}

	data, err := yaml.Marshal(cfg.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal effective config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
