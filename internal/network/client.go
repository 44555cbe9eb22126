package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
)

const pollInterval = time.Second

var ErrNotReady = errors.New("rpc endpoint not ready")

// Dial connects to the RPC endpoint and waits until it serves requests.
// A zero readyTimeout checks the endpoint exactly once.
func Dial(ctx context.Context, url string, readyTimeout time.Duration) (*ethclient.Client, error) {
	log := logger.Named("network").With("url", url)

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	log.With("timeout", readyTimeout).Info("waiting for rpc endpoint")
	if err := waitReady(ctx, client, readyTimeout); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w at %s: %w", ErrNotReady, url, err)
	}

	log.Info("rpc endpoint is ready")

	return client, nil
}

type blockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

func waitReady(ctx context.Context, client blockNumberReader, timeout time.Duration) error {
	if timeout <= 0 {
		_, err := client.BlockNumber(ctx)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		_, err := client.BlockNumber(ctx)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), err)
		case <-ticker.C:
		}
	}
}
