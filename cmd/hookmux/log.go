package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hookmux/hookmux/internal/journal"
)

var (
	logCount      int
	logOutputJSON bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent hook runs from the journal",
	Long: `Show the most recent hook dispatches recorded in the run journal,
newest first.

Examples:
  hookmux log          # Last 20 runs
  hookmux log -n 5     # Last 5 runs
  hookmux log --json   # Machine-readable output`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logCount, "count", "n", 20, "Number of runs to show")
	logCmd.Flags().BoolVar(&logOutputJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	j, err := journal.Load()
	if err != nil {
		return err
	}
	defer func() {
		_ = j.Close()
	}()

	runs := j.Recent(logCount)

	if logOutputJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal journal runs: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No hook runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tHOOK\tREPO\tRESULT\tEXIT\tPLUGINS")
	for _, run := range runs {
		plugins := make([]string, 0, len(run.Plugins))
		for _, p := range run.Plugins {
			plugins = append(plugins, fmt.Sprintf("%s=%s", p.Plugin, p.Status))
		}
		summary := strings.Join(plugins, ", ")
		if summary == "" {
			summary = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.Time.Format("2006-01-02 15:04:05"),
			run.Hook,
			run.Repo,
			run.Overall,
			run.ExitCode,
			summary)
	}
	return w.Flush()
}
