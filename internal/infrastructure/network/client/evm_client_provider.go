package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/infrastructure/configloader"
	applogger "holo_vault_analyzer/internal/pkg/logger"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const defaultProviderConnectionTimeout = 10 * time.Second

// DialFunc connects to one RPC endpoint.
type DialFunc func(ctx context.Context, rpcURL string) (RPCBackend, error)

func dialEthClient(ctx context.Context, rpcURL string) (RPCBackend, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// HoloVaultClientProvider dials the configured RPC endpoints on first use and
// caches the resulting contract client.
type HoloVaultClientProvider struct {
	mu                sync.Mutex
	client            *HoloVaultClient
	cfg               configloader.ChainConfig
	dial              DialFunc
	connectionTimeout time.Duration
	metrics           *metrics.Metrics
	logger            port.Logger
}

// NewHoloVaultClientProvider creates a provider for cfg. dial may be nil to use
// ethclient.
func NewHoloVaultClientProvider(cfg configloader.ChainConfig, dial DialFunc, m *metrics.Metrics, logger port.Logger) *HoloVaultClientProvider {
	if dial == nil {
		dial = dialEthClient
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	timeout := time.Duration(cfg.DialTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultProviderConnectionTimeout
	}
	return &HoloVaultClientProvider{
		cfg:               cfg,
		dial:              dial,
		connectionTimeout: timeout,
		metrics:           m,
		logger:            logger,
	}
}

// GetClient returns the cached client, dialing the primary and then each
// fallback RPC URL until one connects.
func (p *HoloVaultClientProvider) GetClient(ctx context.Context) (*HoloVaultClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	key, err := p.cfg.SigningKey()
	if err != nil {
		return nil, err
	}

	rpcURLs := append([]string{p.cfg.RPCURL}, p.cfg.FallbackRPCURLs...)
	var lastErr error
	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		dialCtx, cancel := context.WithTimeout(ctx, p.connectionTimeout)
		backend, err := p.dial(dialCtx, rpcURL)
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
			p.logger.Warn("RPC connection attempt failed", "rpc_url", rpcURL, "error", err)
			continue
		}

		p.client = NewHoloVaultClient(backend, Options{
			Address:        common.HexToAddress(p.cfg.ContractAddress),
			PrivateKey:     key,
			ChainID:        p.cfg.ChainIDBig(),
			GasLimit:       p.cfg.GasLimit,
			RPCCallTimeout: time.Duration(p.cfg.RPCCallTimeoutSeconds) * time.Second,
			RateLimit:      p.cfg.RateLimit,
			BurstLimit:     p.cfg.BurstLimit,
			Metrics:        p.metrics,
			Logger:         p.logger.With("component", "HoloVaultClient"),
		})
		p.logger.Info("Connected to RPC endpoint", "rpc_url", rpcURL, "contract", p.cfg.ContractAddress, "read_only", key == nil)
		return p.client, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no RPC URL configured")
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for chain %d: %w", p.cfg.ChainID, lastErr)
}
