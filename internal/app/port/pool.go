package port

import "holo_vault_analyzer/internal/domain/entity"

// PoolProvider supplies the pool summaries rendered on the dashboard.
type PoolProvider interface {
	Pools() ([]entity.PoolSummary, error)
}
