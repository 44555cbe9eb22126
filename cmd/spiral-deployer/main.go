package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spiral-cooperative/spiral-deployer/configs"
	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
)

const (
	appName   = "spiral-deployer"
	envPrefix = "SPIRAL"
)

var rootCmd = &cobra.Command{
	Use:               appName,
	Short:             "Deploy the SpiralCooperative contract and record its address and ABI",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runDeploy,
}

func loadConfig(_ *cobra.Command, _ []string) error {
	logger.Initialize(slog.LevelDebug)

	if err := configs.LoadDefaults(viper.GetViper()); err != nil {
		return err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		viper.AddConfigPath(execDir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A config file is optional: embedded defaults, env and flags cover everything
	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config file found, will rely on flags and defaults")
		} else {
			const errMsg = "error reading config file"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}
	} else {
		slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
	}

	if err := viper.Unmarshal(&configs.Values); err != nil {
		const errMsg = "unable to decode application config"
		slog.With("err", err.Error()).Error(errMsg)
		return errors.Join(err, errors.New(errMsg))
	}

	slog.
		With("network", configs.Values.Network).
		With("contract", configs.Values.Contract).
		With("signer", configs.Values.Signer).
		Debug("configuration loaded")

	return nil
}

func main() {
	rootCmd.AddCommand(inspectCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
