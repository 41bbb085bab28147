package configloader

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// PrivateKeyEnv overrides chain.privateKey when set.
const PrivateKeyEnv = "HOLOVAULT_PRIVATE_KEY"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// ChainConfig describes the node and contract the dashboard talks to.
type ChainConfig struct {
	RPCURL                string   `yaml:"rpcURL"`
	FallbackRPCURLs       []string `yaml:"fallbackRPCURLs"`
	ChainID               int64    `yaml:"chainID"`
	ContractAddress       string   `yaml:"contractAddress"`
	PrivateKey            string   `yaml:"privateKey"`
	RPCCallTimeoutSeconds int      `yaml:"rpcCallTimeoutSeconds"`
	DialTimeoutSeconds    int      `yaml:"dialTimeoutSeconds"`
	RateLimit             float64  `yaml:"rateLimit"`
	BurstLimit            int      `yaml:"burstLimit"`
	GasLimit              uint64   `yaml:"gasLimit"`
}

// ContractConfig selects the contract backend.
type ContractConfig struct {
	UseMock bool `yaml:"useMock"`
}

// DashboardConfig holds page composition settings.
type DashboardConfig struct {
	PoolsFile         string `yaml:"poolsFile"`
	UseDemoAnalytics  bool   `yaml:"useDemoAnalytics"`
	SessionTTLMinutes int    `yaml:"sessionTTLMinutes"`
	MaxConcurrentRPC  int    `yaml:"maxConcurrentRPC"`
}

// CacheConfig holds configuration for caching.
type CacheConfig struct {
	AnalyticsTTLSeconds    int `yaml:"analyticsTTLSeconds"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Chain     ChainConfig     `yaml:"chain"`
	Contract  ContractConfig  `yaml:"contract"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Cache     CacheConfig     `yaml:"cache"`
	Swagger   SwaggerConfig   `yaml:"swagger"`
}

// SigningKey parses the configured private key. It returns nil when no key is
// configured, which makes the contract client read-only.
func (c ChainConfig) SigningKey() (*ecdsa.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, nil
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid chain.privateKey: %w", err)
	}
	return key, nil
}

// ChainIDBig returns the chain id for transaction signing.
func (c ChainConfig) ChainIDBig() *big.Int {
	return big.NewInt(c.ChainID)
}

// Load reads the YAML configuration file from the given path, applies
// defaults and validates it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals, defaults and validates raw YAML.
func Parse(data []byte) (*Config, error) {
	cfg := Config{
		Dashboard: DashboardConfig{UseDemoAnalytics: true},
		Swagger:   SwaggerConfig{Enabled: true},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	if key := os.Getenv(PrivateKeyEnv); key != "" {
		cfg.Chain.PrivateKey = key
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("server.port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Chain.ChainID == 0 {
		cfg.Chain.ChainID = 11155111 // Sepolia
		logrus.Infof("chain.chainID not set, defaulting to %d", cfg.Chain.ChainID)
	}
	if cfg.Chain.RPCCallTimeoutSeconds <= 0 {
		cfg.Chain.RPCCallTimeoutSeconds = 10
	}
	if cfg.Chain.DialTimeoutSeconds <= 0 {
		cfg.Chain.DialTimeoutSeconds = 10
	}
	if cfg.Chain.RateLimit > 0 && cfg.Chain.BurstLimit <= 0 {
		cfg.Chain.BurstLimit = 1
		logrus.Infof("chain.burstLimit not set, defaulting to %d", cfg.Chain.BurstLimit)
	}

	if cfg.Dashboard.SessionTTLMinutes <= 0 {
		cfg.Dashboard.SessionTTLMinutes = 60
	}
	if cfg.Dashboard.MaxConcurrentRPC <= 0 {
		cfg.Dashboard.MaxConcurrentRPC = 5
	}

	if cfg.Cache.AnalyticsTTLSeconds <= 0 {
		cfg.Cache.AnalyticsTTLSeconds = 30
		logrus.Infof("cache.analyticsTTLSeconds not set, defaulting to %d", cfg.Cache.AnalyticsTTLSeconds)
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "./docs/swagger.yaml"
	}
}

func validate(cfg *Config) error {
	if cfg.Contract.UseMock {
		if cfg.Chain.RPCURL == "" {
			logrus.Warn("contract.useMock is enabled, no RPC endpoint will be dialed")
		}
	} else {
		if cfg.Chain.RPCURL == "" && len(cfg.Chain.FallbackRPCURLs) == 0 {
			return fmt.Errorf("chain.rpcURL is required unless contract.useMock is set")
		}
		if !common.IsHexAddress(cfg.Chain.ContractAddress) {
			return fmt.Errorf("chain.contractAddress %q is not a valid address", cfg.Chain.ContractAddress)
		}
	}
	if _, err := cfg.Chain.SigningKey(); err != nil {
		return err
	}
	return nil
}
