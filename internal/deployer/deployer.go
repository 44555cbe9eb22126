package deployer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spiral-cooperative/spiral-deployer/internal/artifact"
	"github.com/spiral-cooperative/spiral-deployer/internal/infra/filesystem"
	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
	"github.com/spiral-cooperative/spiral-deployer/internal/signer"
)

type (
	// Backend is the network client a deployment is submitted through.
	Backend interface {
		bind.ContractBackend
		bind.DeployBackend
		ChainID(ctx context.Context) (*big.Int, error)
	}

	artifactRegistry interface {
		Lookup(name string) (artifact.Artifact, error)
	}

	Options struct {
		ContractName        string
		OutputPath          string
		ConfirmationTimeout time.Duration
		// GasLimit of zero lets the backend estimate it.
		GasLimit uint64
	}

	// Deployer deploys a single compiled contract and records where it landed
	Deployer struct {
		backend   Backend
		signers   signer.Provider
		artifacts artifactRegistry
		writer    filesystem.Writer
		opts      Options
		logger    *slog.Logger
	}
)

// New creates a new contract deployer
func New(backend Backend, signers signer.Provider, artifacts artifactRegistry, writer filesystem.Writer, opts Options) *Deployer {
	return &Deployer{
		backend:   backend,
		signers:   signers,
		artifacts: artifacts,
		writer:    writer,
		opts:      opts,
		logger:    logger.Named("deployer"),
	}
}

// Deploy submits the contract creation transaction, waits for it to be
// mined and writes the resulting ContractInfo to the output path.
//
// constructorArgs is passed to the constructor as a single address[]
// argument. When empty, the deploying account's address is used.
//
// If the contract is confirmed but the output cannot be written, the
// ContractInfo is still returned alongside an ErrIO error.
func (d *Deployer) Deploy(ctx context.Context, constructorArgs []common.Address) (ContractInfo, error) {
	log := d.logger.With("contract", d.opts.ContractName)

	log.Info("resolving deployer account")
	signers, err := d.signers.Signers(ctx)
	if err != nil {
		return ContractInfo{}, fmt.Errorf("%w: failed to resolve signers: %w", ErrConfiguration, err)
	}
	if len(signers) == 0 {
		return ContractInfo{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrNoSigners)
	}
	account := signers[0]
	log = log.With("deployer", account.Address().Hex())

	compiled, err := d.artifacts.Lookup(d.opts.ContractName)
	if err != nil {
		return ContractInfo{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if len(constructorArgs) == 0 {
		constructorArgs = []common.Address{account.Address()}
	}

	log.With("guardians", hexAddresses(constructorArgs)).Info("deploying contract")

	result, err := d.submitAndConfirm(ctx, log, account, compiled, constructorArgs)
	if err != nil {
		log.With("err", err.Error()).Error("contract deployment failed")
		return ContractInfo{}, err
	}

	info := ContractInfo{
		Address: result.address.Hex(),
		ABI:     compiled.RawABI,
	}

	log.
		With("address", info.Address).
		With("tx_hash", result.txHash.Hex()).
		With("block_number", result.blockNumber).
		With("gas_used", result.gasUsed).
		Info("contract deployed")

	if err := d.writer.WriteJSON(d.opts.OutputPath, info); err != nil {
		return info, fmt.Errorf("%w: contract deployed at %s but %s could not be written: %w", ErrIO, info.Address, d.opts.OutputPath, err)
	}

	log.With("path", d.opts.OutputPath).Info("contract info saved")

	return info, nil
}

func (d *Deployer) submitAndConfirm(ctx context.Context, log *slog.Logger, account signer.Signer, compiled artifact.Artifact, guardians []common.Address) (deployment, error) {
	chainID, err := d.backend.ChainID(ctx)
	if err != nil {
		return deployment{}, fmt.Errorf("%w: failed to get chain ID: %w", ErrNetwork, err)
	}

	auth, err := account.Transactor(ctx, chainID)
	if err != nil {
		return deployment{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	auth.GasLimit = d.opts.GasLimit

	address, tx, _, err := bind.DeployContract(auth, compiled.ABI, compiled.Bytecode, d.backend, guardians)
	if err != nil {
		return deployment{}, fmt.Errorf("%w: failed to deploy contract: %w", ErrNetwork, err)
	}

	log.
		With("address", address.Hex()).
		With("tx_hash", tx.Hash().Hex()).
		With("chain_id", chainID).
		Info("contract deployment transaction sent")

	waitCtx, cancel := context.WithTimeout(ctx, d.opts.ConfirmationTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, d.backend, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return deployment{}, fmt.Errorf("%w: transaction %s not mined within %s: %w", ErrTimeout, tx.Hash().Hex(), d.opts.ConfirmationTimeout, err)
		}
		return deployment{}, fmt.Errorf("%w: failed to wait for transaction %s: %w", ErrNetwork, tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return deployment{}, fmt.Errorf("%w: %w: tx %s, status %d", ErrNetwork, ErrReverted, tx.Hash().Hex(), receipt.Status)
	}

	if receipt.ContractAddress != (common.Address{}) && receipt.ContractAddress != address {
		return deployment{}, fmt.Errorf("%w: %w: expected %s, got %s", ErrNetwork, ErrAddressMismatch, address.Hex(), receipt.ContractAddress.Hex())
	}

	return deployment{
		address:     address,
		txHash:      tx.Hash(),
		blockNumber: receipt.BlockNumber.Uint64(),
		gasUsed:     receipt.GasUsed,
	}, nil
}

func hexAddresses(addresses []common.Address) []string {
	out := make([]string, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, address.Hex())
	}
	return out
}
