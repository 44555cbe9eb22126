// Package inspect connects to a previously deployed contract using the
// recorded contract info and summarises what it finds on chain.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spiral-cooperative/spiral-deployer/internal/deployer"
	"github.com/spiral-cooperative/spiral-deployer/internal/infra/filesystem"
	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
)

var (
	ErrInvalidInfo = errors.New("invalid contract info")
	ErrNoCode      = errors.New("no contract code at address")
)

type (
	chainReader interface {
		ChainID(ctx context.Context) (*big.Int, error)
		CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	}

	Report struct {
		Address   string   `yaml:"address" json:"address"`
		ChainID   uint64   `yaml:"chain-id" json:"chainId"`
		CodeSize  int      `yaml:"code-size" json:"codeSize"`
		Functions []string `yaml:"functions" json:"functions"`
		Events    []string `yaml:"events" json:"events"`
	}

	Inspector struct {
		client chainReader
		reader filesystem.Reader
		logger *slog.Logger
	}
)

func NewInspector(client chainReader, reader filesystem.Reader) *Inspector {
	return &Inspector{
		client: client,
		reader: reader,
		logger: logger.Named("inspector"),
	}
}

// Inspect loads the contract info at path and checks the contract is live.
func (i *Inspector) Inspect(ctx context.Context, path string) (Report, error) {
	var info deployer.ContractInfo
	if err := i.reader.ReadJSON(path, &info); err != nil {
		return Report{}, fmt.Errorf("failed to load contract info: %w", err)
	}

	if !common.IsHexAddress(info.Address) {
		return Report{}, fmt.Errorf("%w: address '%s' in %s", ErrInvalidInfo, info.Address, path)
	}
	if len(info.ABI) == 0 {
		return Report{}, fmt.Errorf("%w: %s has no abi", ErrInvalidInfo, path)
	}

	contractABI, err := abi.JSON(strings.NewReader(string(info.ABI)))
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidInfo, err)
	}

	address := common.HexToAddress(info.Address)
	log := i.logger.With("address", address.Hex())

	chainID, err := i.client.ChainID(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get chain ID: %w", err)
	}

	code, err := i.client.CodeAt(ctx, address, nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return Report{}, fmt.Errorf("%w %s on chain %s", ErrNoCode, address.Hex(), chainID)
	}

	log.With("chain_id", chainID).With("code_size", len(code)).Info("contract found")

	return Report{
		Address:   address.Hex(),
		ChainID:   chainID.Uint64(),
		CodeSize:  len(code),
		Functions: methodSignatures(contractABI),
		Events:    eventSignatures(contractABI),
	}, nil
}

func methodSignatures(contractABI abi.ABI) []string {
	sigs := make([]string, 0, len(contractABI.Methods))
	for _, method := range contractABI.Methods {
		sigs = append(sigs, method.Sig)
	}
	slices.Sort(sigs)
	return sigs
}

func eventSignatures(contractABI abi.ABI) []string {
	sigs := make([]string, 0, len(contractABI.Events))
	for _, event := range contractABI.Events {
		sigs = append(sigs, event.Sig)
	}
	slices.Sort(sigs)
	return sigs
}
