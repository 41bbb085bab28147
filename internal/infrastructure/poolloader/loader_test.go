package poolloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultPools(t *testing.T) {
	pools := DefaultPools()
	require.Len(t, pools, 3)
	assert.Equal(t, "ETH/USDC", pools[0].Name)
	assert.True(t, pools[0].Encrypted)
	assert.False(t, pools[2].Encrypted)
}

func TestLoadPools(t *testing.T) {
	path := writeFile(t, `[
		{"name":"ETH/USDC","pair":"Ethereum • USDC","tvl":"$45.2M","apr":"12.34%","volume24h":"$2.1M","encrypted":true},
		{"name":"","pair":"nameless"},
		{"name":"NOSLASH"},
		{"name":"ETH/USDC","pair":"duplicate"},
		{"name":"DAI/USDC","pair":"Dai • USDC","tvl":"$3.0M","apr":"2.10%","volume24h":"$0.4M","encrypted":false}
	]`)

	var warnings int
	pools, err := LoadPools(path, func(string, ...any) { warnings++ })
	require.NoError(t, err)
	require.Len(t, pools, 2)
	assert.Equal(t, "ETH/USDC", pools[0].Name)
	assert.Equal(t, "Ethereum • USDC", pools[0].Pair)
	assert.Equal(t, "DAI/USDC", pools[1].Name)
	assert.Equal(t, 3, warnings)
}

func TestLoadPoolsErrors(t *testing.T) {
	_, err := LoadPools(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = LoadPools(writeFile(t, `{"not":"an array"}`), nil)
	assert.ErrorContains(t, err, "unmarshal")
}
