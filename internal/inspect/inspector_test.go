package inspect

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	fsjson "github.com/spiral-cooperative/spiral-deployer/internal/infra/filesystem/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	contractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	contractInfo    = `{
  "address": "0x5fbdb2315678afecb367f032d93f642f64180aa3",
  "abi": [
    {"inputs":[{"internalType":"address[]","name":"_guardians","type":"address[]"}],"stateMutability":"nonpayable","type":"constructor"},
    {"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"guardian","type":"address"}],"name":"GuardianAdded","type":"event"},
    {"inputs":[{"internalType":"address","name":"","type":"address"}],"name":"isGuardian","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
    {"inputs":[],"name":"guardianCount","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
  ]
}`
)

type stubChain struct {
	chainID *big.Int
	code    map[common.Address][]byte
	err     error
}

func (s *stubChain) ChainID(context.Context) (*big.Int, error) {
	return s.chainID, s.err
}

func (s *stubChain) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	return s.code[account], nil
}

func writeInfo(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract_info.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInspect(t *testing.T) {
	chain := &stubChain{
		chainID: big.NewInt(31337),
		code:    map[common.Address][]byte{common.HexToAddress(contractAddress): {0x60, 0x80, 0x60, 0x40}},
	}
	inspector := NewInspector(chain, fsjson.NewReader())

	report, err := inspector.Inspect(context.Background(), writeInfo(t, contractInfo))
	require.NoError(t, err)

	assert.Equal(t, Report{
		Address:   contractAddress,
		ChainID:   31337,
		CodeSize:  4,
		Functions: []string{"guardianCount()", "isGuardian(address)"},
		Events:    []string{"GuardianAdded(address)"},
	}, report)
}

func TestInspectErrors(t *testing.T) {
	ctx := context.Background()
	chain := &stubChain{chainID: big.NewInt(31337)}
	inspector := NewInspector(chain, fsjson.NewReader())

	t.Run("missing file", func(t *testing.T) {
		_, err := inspector.Inspect(ctx, filepath.Join(t.TempDir(), "contract_info.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := inspector.Inspect(ctx, writeInfo(t, `{"address":"spiral","abi":[]}`))
		assert.ErrorIs(t, err, ErrInvalidInfo)
	})

	t.Run("missing abi", func(t *testing.T) {
		_, err := inspector.Inspect(ctx, writeInfo(t, `{"address":"`+contractAddress+`"}`))
		assert.ErrorIs(t, err, ErrInvalidInfo)
	})

	t.Run("no code", func(t *testing.T) {
		_, err := inspector.Inspect(ctx, writeInfo(t, contractInfo))
		assert.ErrorIs(t, err, ErrNoCode)
	})

	t.Run("rpc failure", func(t *testing.T) {
		failing := NewInspector(&stubChain{err: errors.New("connection refused")}, fsjson.NewReader())
		_, err := failing.Inspect(ctx, writeInfo(t, contractInfo))
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestRender(t *testing.T) {
	report := Report{
		Address:   contractAddress,
		ChainID:   31337,
		CodeSize:  4,
		Functions: []string{"isGuardian(address)"},
		Events:    []string{},
	}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, report, FormatYAML))
		assert.Contains(t, buf.String(), "chain-id: 31337\ncode-size: 4\nfunctions:\n  - isGuardian(address)\nevents: []\n")

		var decoded Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report, decoded)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, report, FormatJSON))
		assert.JSONEq(t, `{"address":"`+contractAddress+`","chainId":31337,"codeSize":4,"functions":["isGuardian(address)"],"events":[]}`, buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, Render(&bytes.Buffer{}, report, "toml"))
	})
}
