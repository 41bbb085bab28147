package provider

import (
	"sync"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/infrastructure/poolloader"
)

type poolProviderImpl struct {
	poolsFile string
	logger    port.Logger

	mu         sync.Mutex
	poolsCache []entity.PoolSummary
}

// NewPoolProvider creates a PoolProvider reading poolsFile, or serving the
// demo pools when poolsFile is empty.
func NewPoolProvider(poolsFile string, logger port.Logger) port.PoolProvider {
	return &poolProviderImpl{poolsFile: poolsFile, logger: logger}
}

// Pools loads the pool summaries once and caches them.
func (p *poolProviderImpl) Pools() ([]entity.PoolSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.poolsCache != nil {
		return clonePools(p.poolsCache), nil
	}

	if p.poolsFile == "" {
		p.logger.Debug("No pools file configured, using demo pools")
		p.poolsCache = poolloader.DefaultPools()
		return clonePools(p.poolsCache), nil
	}

	p.logger.Debug("Loading pools from disk", "file", p.poolsFile)
	pools, err := poolloader.LoadPools(p.poolsFile, p.logger.Warn)
	if err != nil {
		p.logger.Error("Failed to load pools", "file", p.poolsFile, "error", err)
		return nil, err
	}

	p.poolsCache = pools
	p.logger.Info("Pools loaded and cached successfully", "count", len(pools))
	return clonePools(pools), nil
}

func clonePools(in []entity.PoolSummary) []entity.PoolSummary {
	out := make([]entity.PoolSummary, len(in))
	copy(out, in)
	return out
}
