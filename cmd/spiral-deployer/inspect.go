package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spiral-cooperative/spiral-deployer/configs"
	"github.com/spiral-cooperative/spiral-deployer/internal/infra/filesystem/json"
	"github.com/spiral-cooperative/spiral-deployer/internal/inspect"
	"github.com/spiral-cooperative/spiral-deployer/internal/network"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Connect to the recorded contract and summarise it",
	Long:  "Reads the contract info written by a deploy, checks that code exists at the recorded address and prints the contract's functions and events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := configs.Values
		if cfg.Network.RPCURL == "" {
			return errors.New("network.rpc-url is required")
		}
		if cfg.Contract.OutputPath == "" {
			return errors.New("contract.output-path is required")
		}

		slog.With("path", cfg.Contract.OutputPath).Info("inspecting deployed contract")

		ctx := cmd.Context()
		client, err := network.Dial(ctx, cfg.Network.RPCURL, cfg.Network.ReadyTimeout)
		if err != nil {
			return err
		}
		defer client.Close()

		report, err := inspect.NewInspector(client, json.NewReader()).Inspect(ctx, cfg.Contract.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to inspect contract: %w", err)
		}

		return inspect.Render(cmd.OutOrStdout(), report, inspectFormat)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", inspect.FormatYAML, "Output format (yaml or json)")
}
