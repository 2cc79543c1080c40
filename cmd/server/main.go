// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sozercan/npk-predictor/internal/config"
	"github.com/sozercan/npk-predictor/internal/form"
	"github.com/sozercan/npk-predictor/internal/model"
	"github.com/sozercan/npk-predictor/internal/predictor"
	"github.com/sozercan/npk-predictor/internal/server"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "npk-predictor",
		Short:         "Serve the NPK ratio prediction dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	})
	root.AddCommand(newPredictCmd())
	return root
}

// setup loads configuration and the model. The model is loaded before anything
// is served so a missing artifact stops the process.
func setup() (*config.Config, *predictor.Predictor, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(cfg.Log.NewLogger())

	tree, err := model.Load(cfg.Model.Path, form.FeatureNames())
	if err != nil {
		return nil, nil, err
	}
	return cfg, predictor.New(tree), nil
}

func runServe() error {
	cfg, p, err := setup()
	if err != nil {
		return err
	}

	srv, err := server.New(*cfg, p)
	if err != nil {
		return err
	}

	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	return srv.Run()
}
