package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hookmux/hookmux/internal/config"
)

var pluginsOutputJSON bool

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered plugins and their enablement",
	Long: `List every registered plugin, the hooks it can serve, and the hooks
the effective configuration enables it for.

Examples:
  hookmux plugins          # Table output
  hookmux plugins --json   # Machine-readable output`,
	RunE: runPlugins,
}

func init() {
	pluginsCmd.Flags().BoolVar(&pluginsOutputJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(pluginsCmd)
}

type pluginInfo struct {
	ID         string   `json:"id"`
	Hooks      []string `json:"hooks"`
	EnabledFor []string `json:"enabledFor"`
}

func runPlugins(cmd *cobra.Command, args []string) error {
	scopes, repoRoot, err := config.LoadScopes()
	if err != nil {
		return err
	}
	cfg := config.Resolve(scopes...)

	registry, err := buildRegistry(cfg, repoRoot)
	if err != nil {
		return err
	}

	var infos []pluginInfo
	for _, id := range registry.IDs() {
		desc, err := registry.Lookup(id)
		if err != nil {
			return err
		}

		info := pluginInfo{ID: id, Hooks: make([]string, 0, len(desc.Hooks))}
		for _, t := range desc.Hooks {
			info.Hooks = append(info.Hooks, t.String())
			for _, enabled := range cfg.PluginsFor(t) {
				if enabled == id {
					info.EnabledFor = append(info.EnabledFor, t.String())
					break
				}
			}
		}
		infos = append(infos, info)
	}

	if pluginsOutputJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plugin list: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(infos) == 0 {
		fmt.Println("No plugins registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PLUGIN\tSERVES\tENABLED FOR")
	for _, info := range infos {
		enabledFor := strings.Join(info.EnabledFor, ", ")
		if enabledFor == "" {
			enabledFor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, strings.Join(info.Hooks, ", "), enabledFor)
	}
	return w.Flush()
}
