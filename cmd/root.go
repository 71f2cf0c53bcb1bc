package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration, used when no .orcr.yaml is found
const defaultConfigYAML = `
meta:
  year: 2025
  type: NEET_PG
  exam: NEET_PG
  gender: Gender-Neutral
defaults:
  quota: All India
  category: Open
  candidate_category: General
pdf:
  cell_gap: 8
  word_gap: 0.15
output:
  dir: .
  sample_size: 10
rounds:
  "1":
    title: NEET PG Round 1 {year} Cutoff Data
  "2":
    title: NEET PG Round 2 {year} Cutoff Data
round2:
  strategy: positional
  round1_module: neetPgR1_{year}.js
server:
  port: "8080"
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "orcr [files...]",
		Short: "Convert NEET PG allotment bulletins into ORCR records",
		Long: `orcr reads NEET PG allotment bulletins (PDF, tabula JSON, CSV or XLSX),
recovers each allotment row and consolidates them into opening/closing rank
records ready to be imported by the frontend.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runParse(parseCmd, args)
			}
			return cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.orcr.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	// .env values become environment variables; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error loading .env: %v\n", err)
		os.Exit(1)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".orcr")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ORCR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// expandYear substitutes {year} in configured templates.
func expandYear(template string, year int) string {
	return strings.ReplaceAll(template, "{year}", fmt.Sprint(year))
}
