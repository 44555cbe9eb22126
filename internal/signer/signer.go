// Package signer resolves the accounts allowed to submit transactions.
package signer

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidKey = errors.New("invalid signer key")

type (
	// Signer is an authorized account able to sign transactions for a chain.
	Signer interface {
		Address() common.Address
		Transactor(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
	}

	// Provider hands out the signers configured for this run, in priority order.
	Provider interface {
		Signers(ctx context.Context) ([]Signer, error)
	}
)
