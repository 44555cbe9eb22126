package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", cfg.Network.RPCURL)
	assert.Equal(t, 2*time.Minute, cfg.Network.ConfirmationTimeout)
	assert.Equal(t, 30*time.Second, cfg.Network.ReadyTimeout)
	assert.Equal(t, "SpiralCooperative", cfg.Contract.Name)
	assert.Equal(t, "contract_info.json", cfg.Contract.OutputPath)
	assert.Len(t, cfg.Signer.PrivateKeys, 1)
	assert.Empty(t, cfg.Contract.Guardians)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("reports every missing setting", func(t *testing.T) {
		var cfg Config
		err := cfg.Validate()
		require.Error(t, err)

		for _, key := range []string{
			"network.rpc-url",
			"network.confirmation-timeout",
			"signer.private-keys or signer.keystore-dir",
			"contract.name",
			"contract.artifacts-dir",
			"contract.output-path",
		} {
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("rejects malformed guardians", func(t *testing.T) {
		cfg, err := DefaultConfig()
		require.NoError(t, err)
		cfg.Contract.Guardians = []string{"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "steward"}

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contract.guardians[1]")
		assert.NotContains(t, err.Error(), "contract.guardians[0]")
	})

	t.Run("keystore alone is enough", func(t *testing.T) {
		cfg, err := DefaultConfig()
		require.NoError(t, err)
		cfg.Signer.PrivateKeys = nil
		cfg.Signer.KeystoreDir = "/tmp/keystore"

		assert.NoError(t, cfg.Validate())
	})
}

func TestGuardianAddresses(t *testing.T) {
	c := Contract{Guardians: []string{"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"}}

	addresses := c.GuardianAddresses()
	require.Len(t, addresses, 1)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addresses[0].Hex())
}
