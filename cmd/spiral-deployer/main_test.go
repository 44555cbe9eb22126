package main

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/spiral-cooperative/spiral-deployer/configs"
	"github.com/spiral-cooperative/spiral-deployer/internal/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(viper.Reset)

	t.Setenv("SPIRAL_NETWORK_RPC_URL", "http://node.spiral.local:8545")
	require.NoError(t, rootCmd.PersistentFlags().Set("contract-name", "SpiralTreasury"))
	require.NoError(t, rootCmd.PersistentFlags().Set("confirmation-timeout", "45s"))
	require.NoError(t, rootCmd.PersistentFlags().Set("guardian", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"))

	require.NoError(t, loadConfig(rootCmd, nil))

	cfg := configs.Values
	assert.Equal(t, "http://node.spiral.local:8545", cfg.Network.RPCURL)
	assert.Equal(t, "SpiralTreasury", cfg.Contract.Name)
	assert.Equal(t, 45*time.Second, cfg.Network.ConfirmationTimeout)
	assert.Equal(t, []string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}, cfg.Contract.Guardians)

	// untouched settings come from the embedded defaults
	assert.Equal(t, "contract_info.json", cfg.Contract.OutputPath)
	assert.Equal(t, "artifacts", cfg.Contract.ArtifactsDir)
	assert.Len(t, cfg.Signer.PrivateKeys, 1)
	require.NoError(t, cfg.Validate())
}

func TestNewSignerProvider(t *testing.T) {
	assert.IsType(t, &signer.KeystoreProvider{}, newSignerProvider(configs.Signer{KeystoreDir: "keys", PrivateKeys: []string{"0x01"}}))
	assert.IsType(t, &signer.KeyProvider{}, newSignerProvider(configs.Signer{PrivateKeys: []string{"0x01"}}))
}
