package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanchriswhite/quebar/internal/config"
	"github.com/bryanchriswhite/quebar/internal/wm"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the current workspace list",
	Long: `Query the window manager once for the full workspace list and print it.

This is a one-shot connection; it does not subscribe to events.`,
	Example: `  # Print workspaces in table format (default)
  quebar query

  # Print workspaces in JSON format
  quebar query --format json`,
	RunE: runQuery,
}

var queryFormat string

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "table", "output format (table or json)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	endpoint := configMgr.Get().Endpoint
	if viper.IsSet("endpoint") && viper.GetString("endpoint") != "" {
		endpoint = viper.GetString("endpoint")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := wm.QueryWorkspaces(ctx, endpoint)
	if err != nil {
		return err
	}

	switch queryFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFOCUSED\tVISIBLE")
		for _, ws := range snap {
			fmt.Fprintf(w, "%s\t%v\t%v\n", ws.Name, ws.Focused, ws.Visible)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown format: %s", queryFormat)
	}
}
