package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/aqlanhadi/orcr/extractor"
	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/spf13/cobra"
)

var rowsCmd = &cobra.Command{
	Use:   "rows [file]",
	Short: "Print the cleaned table rows of a bulletin",
	Long: `Prints the tables read from a bulletin as JSON without interpreting them.
Useful for checking how a new bulletin layout is split into cells.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := extractor.OptionsFromConfig(1)
		if err != nil {
			return err
		}

		tables, err := common.LoadTablesFromFile(args[0], opts.Load)
		if err != nil {
			return err
		}

		asJSON, err := json.MarshalIndent(tables, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(asJSON))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rowsCmd)
}
