package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type (
	// KeyProvider serves signers backed by raw hex private keys
	KeyProvider struct {
		keys []string
	}

	keySigner struct {
		key     *ecdsa.PrivateKey
		address common.Address
	}
)

// NewKeyProvider creates a provider over hex encoded private keys, with or without 0x prefix
func NewKeyProvider(keys []string) *KeyProvider {
	return &KeyProvider{keys: keys}
}

func (p *KeyProvider) Signers(_ context.Context) ([]Signer, error) {
	signers := make([]Signer, 0, len(p.keys))
	for i, hexKey := range p.keys {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("%w: private key #%d: %w", ErrInvalidKey, i, err)
		}

		signers = append(signers, &keySigner{
			key:     privateKey,
			address: crypto.PubkeyToAddress(privateKey.PublicKey),
		})
	}

	return signers, nil
}

func (s *keySigner) Address() common.Address {
	return s.address
}

func (s *keySigner) Transactor(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	return auth, nil
}
