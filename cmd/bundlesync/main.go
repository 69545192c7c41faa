package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/packworks/bundlesync/internal/depotsdk"
	"github.com/packworks/bundlesync/internal/publisher"
	"github.com/packworks/bundlesync/internal/utils"
	"github.com/packworks/bundlesync/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultServerURL = "https://depot.packworks.io"
	logFileName      = "bundlesync.log"
)

var cyan = color.New(color.FgHiCyan).SprintFunc()

var rootCmd = &cobra.Command{
	Use:     "bundlesync",
	Short:   "Aggregate app packages into a master bundle and push it to the depot",
	Version: version.Detailed(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		// config is valid, errors past this point are runtime failures
		cmd.SilenceUsage = true
		fmt.Println(cyan(version.AppName), version.Short())

		sdk, err := depotsdk.New(cfg.ServerURL, cfg.AccessToken)
		if err != nil {
			return err
		}
		defer sdk.Close()

		pub := publisher.New(cfg, publisher.NewDepot(sdk))
		if err := pub.Run(cmd.Context()); err != nil {
			slog.Error("bundle publish failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.PersistentFlags().StringP("workdir", "w", ".", "Directory holding incoming artifacts and the master bundle")
	rootCmd.PersistentFlags().StringP("server", "s", defaultServerURL, "Depot server URL")
}

func loadConfig(cmd *cobra.Command) error {
	// .env is optional; real deployments set BUNDLESYNC_ACCESS_TOKEN directly.
	_ = godotenv.Load()

	viper.SetEnvPrefix("bundlesync")
	viper.AutomaticEnv()

	if err := viper.BindPFlag("workdir", cmd.Flag("workdir")); err != nil {
		return err
	}
	return viper.BindPFlag("server_url", cmd.Flag("server"))
}

func buildConfig() (*publisher.Config, error) {
	cfg := &publisher.Config{
		WorkDir:     viper.GetString("workdir"),
		ServerURL:   viper.GetString("server_url"),
		AccessToken: viper.GetString("access_token"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging() func() {
	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// console-only logging still works
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		slog.SetDefault(slog.New(stdoutHandler))
		return func() {}
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stdoutHandler, fileHandler)))
	return func() { file.Close() }
}

func main() {
	closeLog := setupLogging()
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		closeLog()
		os.Exit(1)
	}
}
