package poolloader

import (
	"fmt"
	"os"
	"strings"

	"holo_vault_analyzer/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultPools are the demo pools shown when no pools file is configured.
func DefaultPools() []entity.PoolSummary {
	return []entity.PoolSummary{
		{Name: "ETH/USDC", Pair: "Ethereum • USDC", TVL: "$45.2M", APR: "12.34%", Volume24h: "$2.1M", Encrypted: true},
		{Name: "BTC/ETH", Pair: "Bitcoin • Ethereum", TVL: "$28.7M", APR: "8.91%", Volume24h: "$1.8M", Encrypted: true},
		{Name: "USDC/USDT", Pair: "USDC • Tether", TVL: "$67.1M", APR: "4.23%", Volume24h: "$5.4M", Encrypted: false},
	}
}

// LoadPools reads a JSON array of pool summaries. Entries without a name or
// with a malformed name are skipped and reported through warn.
func LoadPools(path string, warn func(msg string, args ...any)) ([]entity.PoolSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pools file %s: %w", path, err)
	}

	var pools []entity.PoolSummary
	if err := json.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pools from %s: %w", path, err)
	}

	valid := make([]entity.PoolSummary, 0, len(pools))
	seen := make(map[string]struct{}, len(pools))
	for i, p := range pools {
		if err := validatePool(p); err != nil {
			if warn != nil {
				warn("Invalid pool entry, skipping.", "file", path, "index", i, "error", err)
			}
			continue
		}
		if _, dup := seen[p.Name]; dup {
			if warn != nil {
				warn("Duplicate pool name, skipping.", "file", path, "index", i, "name", p.Name)
			}
			continue
		}
		seen[p.Name] = struct{}{}
		valid = append(valid, p)
	}
	return valid, nil
}

func validatePool(p entity.PoolSummary) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pool name is empty")
	}
	if !strings.Contains(p.Name, "/") {
		return fmt.Errorf("pool name %q is not of the form BASE/QUOTE", p.Name)
	}
	return nil
}
