package configs

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var Values Config

type (
	Config struct {
		Network  Network  `mapstructure:"network"`
		Signer   Signer   `mapstructure:"signer"`
		Contract Contract `mapstructure:"contract"`
	}

	Network struct {
		RPCURL              string        `mapstructure:"rpc-url"`
		ReadyTimeout        time.Duration `mapstructure:"ready-timeout"`
		ConfirmationTimeout time.Duration `mapstructure:"confirmation-timeout"`
		GasLimit            uint64        `mapstructure:"gas-limit"`
	}

	Signer struct {
		PrivateKeys        []string `mapstructure:"private-keys"`
		KeystoreDir        string   `mapstructure:"keystore-dir"`
		KeystorePassphrase string   `mapstructure:"keystore-passphrase"`
	}

	Contract struct {
		Name         string   `mapstructure:"name"`
		ArtifactsDir string   `mapstructure:"artifacts-dir"`
		OutputPath   string   `mapstructure:"output-path"`
		Guardians    []string `mapstructure:"guardians"`
	}
)

// LogValue keeps key material out of the logs.
func (s Signer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("private_keys", len(s.PrivateKeys)),
		slog.String("keystore_dir", s.KeystoreDir),
	)
}

// Validate checks the settings a deploy run needs.
func (c *Config) Validate() error {
	var errs []error

	if c.Network.RPCURL == "" {
		errs = append(errs, errors.New("network.rpc-url is required"))
	}
	if c.Network.ReadyTimeout < 0 {
		errs = append(errs, errors.New("network.ready-timeout must not be negative"))
	}
	if c.Network.ConfirmationTimeout <= 0 {
		errs = append(errs, errors.New("network.confirmation-timeout must be positive"))
	}

	if len(c.Signer.PrivateKeys) == 0 && c.Signer.KeystoreDir == "" {
		errs = append(errs, errors.New("signer.private-keys or signer.keystore-dir is required"))
	}

	if c.Contract.Name == "" {
		errs = append(errs, errors.New("contract.name is required"))
	}
	if c.Contract.ArtifactsDir == "" {
		errs = append(errs, errors.New("contract.artifacts-dir is required"))
	}
	if c.Contract.OutputPath == "" {
		errs = append(errs, errors.New("contract.output-path is required"))
	}
	for i, guardian := range c.Contract.Guardians {
		if !common.IsHexAddress(guardian) {
			errs = append(errs, fmt.Errorf("contract.guardians[%d] is not a hex address: '%s'", i, guardian))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// GuardianAddresses returns the configured guardians as addresses.
func (c *Contract) GuardianAddresses() []common.Address {
	addresses := make([]common.Address, 0, len(c.Guardians))
	for _, guardian := range c.Guardians {
		addresses = append(addresses, common.HexToAddress(guardian))
	}
	return addresses
}
