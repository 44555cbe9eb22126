package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spiral-cooperative/spiral-deployer/configs"
	"github.com/spiral-cooperative/spiral-deployer/internal/artifact"
	"github.com/spiral-cooperative/spiral-deployer/internal/deployer"
	"github.com/spiral-cooperative/spiral-deployer/internal/infra/filesystem/json"
	"github.com/spiral-cooperative/spiral-deployer/internal/network"
	"github.com/spiral-cooperative/spiral-deployer/internal/signer"
)

func runDeploy(cmd *cobra.Command, _ []string) error {
	cfg := configs.Values
	slog.Info("starting deploy command. Validating config")

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := network.Dial(ctx, cfg.Network.RPCURL, cfg.Network.ReadyTimeout)
	if err != nil {
		return fmt.Errorf("%w: %w", deployer.ErrNetwork, err)
	}
	defer client.Close()

	d := deployer.New(
		client,
		newSignerProvider(cfg.Signer),
		artifact.NewRegistry(cfg.Contract.ArtifactsDir),
		json.NewWriter(),
		deployer.Options{
			ContractName:        cfg.Contract.Name,
			OutputPath:          cfg.Contract.OutputPath,
			ConfirmationTimeout: cfg.Network.ConfirmationTimeout,
			GasLimit:            cfg.Network.GasLimit,
		},
	)

	info, err := d.Deploy(ctx, cfg.Contract.GuardianAddresses())
	if err != nil {
		return fmt.Errorf("error occurred deploying %s: %w", cfg.Contract.Name, err)
	}

	slog.
		With("contract", cfg.Contract.Name).
		With("address", info.Address).
		With("path", cfg.Contract.OutputPath).
		Info("deploy completed successfully")

	return nil
}

func newSignerProvider(cfg configs.Signer) signer.Provider {
	if cfg.KeystoreDir != "" {
		return signer.NewKeystoreProvider(cfg.KeystoreDir, cfg.KeystorePassphrase)
	}
	return signer.NewKeyProvider(cfg.PrivateKeys)
}
