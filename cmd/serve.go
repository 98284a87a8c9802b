package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pratapsingh123om/wqam-dashboard/internal/analyze"
	"github.com/pratapsingh123om/wqam-dashboard/internal/history"
	"github.com/pratapsingh123om/wqam-dashboard/internal/mlmodel"
	"github.com/pratapsingh123om/wqam-dashboard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload/analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		var logger *zap.Logger
		var err error
		if debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		addr := serveAddr
		modelPath := ""
		historySize := history.DefaultCapacity
		opts := []analyze.Option{}
		if cfg != nil {
			if addr == "" {
				addr = cfg.ListenAddr
			}
			modelPath = cfg.ModelPath
			historySize = cfg.HistorySize
			opts = append(opts, analyze.WithRegistry(cfg.Registry()))
		}
		if addr == "" {
			addr = ":8080"
		}
		opts = append(opts, analyze.WithModel(mlmodel.NewHandle(modelPath)))

		pipeline := analyze.NewPipeline(opts...)
		store := history.New(historySize)
		srv := server.New(pipeline, store, logger)

		logger.Info("listening",
			zap.String("addr", addr),
			zap.Int("history_size", historySize),
			zap.Bool("model_configured", modelPath != ""))
		return srv.Router().Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
