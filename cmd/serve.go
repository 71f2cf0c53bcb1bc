package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/aqlanhadi/orcr/api"
	"github.com/aqlanhadi/orcr/extractor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts bulletins and returns ORCR records as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Configure logging for server mode
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		opts, err := extractor.OptionsFromConfig(1)
		if err != nil {
			return err
		}

		cfg := api.DefaultConfig()
		cfg.Options = opts
		cfg.LogPrefix = "SERVER: "
		if module := viper.GetString("round2.round1_module"); module != "" {
			cfg.Round1Module = filepath.Join(viper.GetString("output.dir"), expandYear(module, opts.Meta.Year))
		}

		port := servePort
		if port == "" {
			port = viper.GetString("server.port")
		}
		if port != "" {
			cfg.Port = ":" + port
		}

		server := api.New(cfg)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on (default from config, 8080)")
}
