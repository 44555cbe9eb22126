package signer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
)

type (
	// KeystoreProvider serves signers from an encrypted go-ethereum keystore
	// directory. Every account in the directory is unlocked with the same
	// passphrase.
	KeystoreProvider struct {
		dir        string
		passphrase string
		logger     *slog.Logger
	}

	keystoreSigner struct {
		ks      *keystore.KeyStore
		account accounts.Account
	}
)

// NewKeystoreProvider creates a keystore backed provider
func NewKeystoreProvider(dir, passphrase string) *KeystoreProvider {
	return &KeystoreProvider{
		dir:        dir,
		passphrase: passphrase,
		logger:     logger.Named("keystore_provider"),
	}
}

func (p *KeystoreProvider) Signers(_ context.Context) ([]Signer, error) {
	ks := keystore.NewKeyStore(p.dir, keystore.StandardScryptN, keystore.StandardScryptP)

	keystoreAccounts := ks.Accounts()
	p.logger.
		With("dir", p.dir).
		With("accounts", len(keystoreAccounts)).
		Debug("keystore opened")

	signers := make([]Signer, 0, len(keystoreAccounts))
	for _, account := range keystoreAccounts {
		if err := ks.Unlock(account, p.passphrase); err != nil {
			return nil, fmt.Errorf("%w: failed to unlock %s: %w", ErrInvalidKey, account.Address.Hex(), err)
		}
		signers = append(signers, &keystoreSigner{ks: ks, account: account})
	}

	return signers, nil
}

func (s *keystoreSigner) Address() common.Address {
	return s.account.Address
}

func (s *keystoreSigner) Transactor(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyStoreTransactorWithChainID(s.ks, s.account, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create keystore transactor: %w", err)
	}
	auth.Context = ctx

	return auth, nil
}
