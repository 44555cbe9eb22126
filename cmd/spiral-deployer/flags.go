package main

import (
	"time"

	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | uint64 | time.Duration | []string
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

// Defaults live in configs/config.example.yaml; flags only override.
var (
	stringFlags = []flagDef[string]{
		// Network
		{"rpc-url", "network.rpc-url", "", "JSON-RPC endpoint of the target network"},

		// Contract
		{"contract-name", "contract.name", "", "Name of the compiled contract to deploy"},
		{"artifacts-dir", "contract.artifacts-dir", "", "Hardhat artifacts or Foundry out directory"},
		{"output-path", "contract.output-path", "", "Where the contract info JSON is written"},

		// Signer
		{"keystore-dir", "signer.keystore-dir", "", "Encrypted keystore directory; takes precedence over private keys"},
		{"keystore-passphrase", "signer.keystore-passphrase", "", "Passphrase unlocking the keystore accounts"},
	}

	durationFlags = []flagDef[time.Duration]{
		{"rpc-ready-timeout", "network.ready-timeout", 0, "How long to wait for the RPC endpoint to answer"},
		{"confirmation-timeout", "network.confirmation-timeout", 0, "How long to wait for the deployment to be mined"},
	}

	uint64Flags = []flagDef[uint64]{
		{"gas-limit", "network.gas-limit", 0, "Gas limit for the deployment, 0 to estimate"},
	}

	stringSliceFlags = []flagDef[[]string]{
		{"private-key", "signer.private-keys", nil, "Hex private key of a deployer account (repeatable)"},
		{"guardian", "contract.guardians", nil, "Guardian address passed to the constructor (repeatable), defaults to the deployer"},
	}
)

func init() {
	if err := declareFlags(stringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(durationFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(uint64Flags); err != nil {
		panic(err)
	}
	if err := declareFlags(stringSliceFlags); err != nil {
		panic(err)
	}
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single persistent flag and binds it to a viper configuration key.
func declareFlag[T flagType](flagName, viperKey string, defaultValue T, description string) error {
	flags := rootCmd.PersistentFlags()

	switch value := any(defaultValue).(type) {
	case string:
		flags.String(flagName, value, description)
	case uint64:
		flags.Uint64(flagName, value, description)
	case time.Duration:
		flags.Duration(flagName, value, description)
	case []string:
		flags.StringSlice(flagName, value, description)
	}
	return viper.BindPFlag(viperKey, flags.Lookup(flagName))
}
