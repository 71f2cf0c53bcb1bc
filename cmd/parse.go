package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/aqlanhadi/orcr/extractor"
	"github.com/aqlanhadi/orcr/extractor/common"
	"github.com/aqlanhadi/orcr/extractor/round2"
	"github.com/aqlanhadi/orcr/integrations/excel"
	"github.com/aqlanhadi/orcr/integrations/jsmodule"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const previewSize = 5

var (
	parseRound    int
	parseYear     int
	parseStrategy string
	parseRound1   string
	parseOutput   string
	parseJSON     string
	parseXLSX     string
	parseSample   string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files or folders...]",
	Short: "Parse allotment bulletins into ORCR records",
	Long: `Parses one or more allotment bulletins of the same round and writes the
consolidated records as a JavaScript module. Folders are scanned for .pdf,
.json, .csv and .xlsx files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args)
	},
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions()
	if err != nil {
		return err
	}

	if opts.Round == 2 && opts.Strategy == round2.Smart {
		path := parseRound1
		if path == "" {
			path = filepath.Join(viper.GetString("output.dir"), expandYear(viper.GetString("round2.round1_module"), opts.Meta.Year))
		}
		opts.Lookup, err = extractor.LoadLookup(path, opts.Defaults)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := extractor.ExecuteAgainstPaths(ctx, args, opts)
	if err != nil {
		return err
	}

	if err := writeOutputs(result, opts); err != nil {
		return err
	}

	printSummary(cmd, result, opts)
	return nil
}

func parseOptions() (extractor.Options, error) {
	opts, err := extractor.OptionsFromConfig(parseRound)
	if err != nil {
		return opts, err
	}

	if parseStrategy != "" {
		if opts.Strategy, err = round2.ParseStrategy(parseStrategy); err != nil {
			return opts, err
		}
	}
	if parseYear > 0 {
		opts.Meta.Year = parseYear
	}
	return opts, nil
}

func exportName(opts extractor.Options) string {
	if name := viper.GetString(fmt.Sprintf("rounds.%d.export_name", opts.Round)); name != "" {
		return expandYear(name, opts.Meta.Year)
	}
	return jsmodule.ExportName(opts.Round, opts.Meta.Year)
}

func writeOutputs(result extractor.Result, opts extractor.Options) error {
	name := exportName(opts)

	output := parseOutput
	if output == "" {
		output = filepath.Join(viper.GetString("output.dir"), name+".js")
	}

	title := expandYear(viper.GetString(fmt.Sprintf("rounds.%d.title", opts.Round)), opts.Meta.Year)
	if title == "" {
		title = fmt.Sprintf("NEET PG Round %d %d Cutoff Data", opts.Round, opts.Meta.Year)
	}

	r2, r1 := result.Round2Split()
	header := jsmodule.Header{
		Title:         title,
		Generator:     "orcr parse",
		ExportName:    name,
		RunID:         result.Report.RunID,
		Split:         opts.Round == 2,
		Round2Entries: r2,
		Round1Entries: r1,
	}

	if output == "-" {
		if err := jsmodule.Write(os.Stdout, result.Records, header); err != nil {
			return err
		}
	} else if err := jsmodule.WriteFile(output, result.Records, header); err != nil {
		return err
	}

	if parseJSON != "" {
		if err := jsmodule.WriteJSONFile(parseJSON, result.Records); err != nil {
			return err
		}
	}
	if parseSample != "" {
		if err := jsmodule.WriteSample(parseSample, result.Records, viper.GetInt("output.sample_size")); err != nil {
			return err
		}
	}
	if parseXLSX != "" {
		if err := excel.WriteFile(parseXLSX, result.Records, fmt.Sprintf("Round %d", opts.Round)); err != nil {
			return err
		}
	}

	if output != "-" {
		fmt.Printf("✓ Saved %d entries to %s\n", len(result.Records), output)
	}
	return nil
}

func printSummary(cmd *cobra.Command, result extractor.Result, opts extractor.Options) {
	out := cmd.ErrOrStderr()
	report := result.Report

	fmt.Fprintf(out, "Extracted %d raw rows\n", report.Entries)
	if opts.Round == 2 {
		fmt.Fprintf(out, "  Round 2 data: %d\n  Round 1 fallback: %d\n", report.RowsRound2, report.RowsRound1Fallback)
	}
	fmt.Fprintf(out, "After consolidation: %d unique entries\n", report.Consolidated)
	fmt.Fprintf(out, "Duplicates merged: %d\n", report.Merged)

	preview := result.Records
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}
	for _, r := range preview {
		fmt.Fprintf(out, "  %s → %s\n    Course: %s\n", rankRange(r), r.Institute, r.AcademicProgramName)
	}
}

func rankRange(r common.ConsolidatedRecord) string {
	if r.OpenRank == r.CloseRank {
		return fmt.Sprintf("Rank %d", r.CloseRank)
	}
	return fmt.Sprintf("Rank %d-%d", r.OpenRank, r.CloseRank)
}

func init() {
	rootCmd.AddCommand(parseCmd)

	flags := parseCmd.Flags()
	flags.IntVarP(&parseRound, "round", "r", 1, "allotment round of the bulletin (1 or 2)")
	flags.IntVarP(&parseYear, "year", "y", 0, "counselling year (default from config)")
	flags.StringVarP(&parseStrategy, "strategy", "s", "", "round 2 strategy: positional or smart (default from config)")
	flags.StringVar(&parseRound1, "r1", "", "round 1 module used by the smart strategy")
	flags.StringVarP(&parseOutput, "output", "o", "", "JavaScript module path, - for stdout (default <output.dir>/<export name>.js)")
	flags.StringVar(&parseJSON, "json", "", "also write the records as a JSON array")
	flags.StringVar(&parseXLSX, "xlsx", "", "also write the records as a workbook")
	flags.StringVar(&parseSample, "sample", "", "also write the first output.sample_size records as JSON")
}
