package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/momento/internal/api"
	"github.com/forPelevin/momento/internal/config"
	"github.com/forPelevin/momento/internal/logging"
	"github.com/forPelevin/momento/internal/pipeline"
	"github.com/forPelevin/momento/internal/store"
)

func run(cmd *cobra.Command) error {
	// Flags override the environment by feeding the same resolution path.
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		os.Setenv(config.EnvPort, strconv.Itoa(port))
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		os.Setenv(config.EnvDataDir, dataDir)
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting momento",
		"version", config.Version,
		"data_dir", cfg.DataDir(),
		"ffmpeg", cfg.FFmpegPath(),
	)

	st, err := store.New(cfg.DataDir())
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{
		FFmpegPath: cfg.FFmpegPath(),
		APIKey:     cfg.APIKey(),
		ModelID:    cfg.ModelID(),
		BaseURL:    cfg.BaseURL(),
		Store:      st,
		Logger:     logging.WithComponent(logger, "pipeline"),
	})

	srv := api.NewServer(api.ServerConfig{
		Port:      cfg.Port(),
		Store:     st,
		Processor: p,
		Logger:    logging.WithComponent(logger, "api"),
		StartTime: time.Now(),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
