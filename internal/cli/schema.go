package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/internal/services"
	"github.com/vvka-141/csvload/internal/tui"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <path>",
	Short: "Show inferred columns and create statements without connecting",
	Long: `Schema performs a dry run of load: files are located, decoded and inferred
exactly as load would, and the create statement for --driver is printed.
Nothing is written and no connection is opened.

Examples:
  csvload schema ./data
  csvload schema ./data/orders.csv --driver sqlserver`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

var schemaFlags sourceFlagValues

func init() {
	rootCmd.AddCommand(schemaCmd)
	registerSourceFlags(schemaCmd, &schemaFlags)
}

func runSchema(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(schemaFlags.configPath)
	if err != nil {
		return err
	}
	runConfig, err := buildSourceConfig(cmd, &schemaFlags, args[0], projectCfg)
	if err != nil {
		return err
	}

	plans, err := services.Inspect(context.Background(), filesystem.NewOSFileSystem(), runConfig)
	if err != nil {
		return err
	}

	return writePlans(cmd.OutOrStdout(), plans)
}

// writePlans prints one block per file. A file that cannot be decoded is
// reported in place and does not stop the others.
func writePlans(w io.Writer, plans []services.TablePlan) error {
	var failed int
	for i, plan := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "-- %s -> %s\n", plan.File.Name, plan.File.Table)
		if len(plan.SharedWith) > 0 {
			fmt.Fprintf(w, "-- ! table shared with %s\n", strings.Join(plan.SharedWith, ", "))
		}
		if plan.Err != nil {
			failed++
			fmt.Fprintf(w, "-- %s %v\n", tui.SymbolCross, plan.Err)
			continue
		}
		cols := make([]string, len(plan.Columns))
		for j, c := range plan.Columns {
			cols[j] = c.Name + " " + c.Type.String()
		}
		fmt.Fprintf(w, "-- %d rows; %s\n", plan.Rows, strings.Join(cols, ", "))
		fmt.Fprintf(w, "%s;\n", plan.Statement)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be decoded", failed, len(plans))
	}
	return nil
}
