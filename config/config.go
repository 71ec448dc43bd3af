// Package config enables config file parsing.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/oasisprotocol/deepspace/log"
	"github.com/oasisprotocol/deepspace/tx"
)

// Config contains the CLI configuration.
type Config struct {
	Chain   *ChainConfig   `koanf:"chain"`
	Signer  *SignerConfig  `koanf:"signer"`
	Journal *JournalConfig `koanf:"journal"`
	Server  *ServerConfig  `koanf:"server"`
	Log     *LogConfig     `koanf:"log"`
	Metrics *MetricsConfig `koanf:"metrics"`
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if cfg.Chain != nil {
		if err := cfg.Chain.Validate(); err != nil {
			return fmt.Errorf("chain: %w", err)
		}
	}
	if cfg.Signer != nil {
		if err := cfg.Signer.Validate(); err != nil {
			return fmt.Errorf("signer: %w", err)
		}
	}
	if cfg.Journal != nil {
		if err := cfg.Journal.Validate(); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}
	if cfg.Server != nil {
		if err := cfg.Server.Validate(); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}
	if cfg.Log != nil {
		if err := cfg.Log.Validate(); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}
	if cfg.Metrics != nil {
		if err := cfg.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}

// ChainConfig describes the chain transactions are built for.
type ChainConfig struct {
	// ChainID is copied into every sign doc, e.g. "columbus-5".
	ChainID string `koanf:"chain_id"`

	// Family selects the envelope tag, "cosmos" or "terra". Defaults to cosmos.
	Family string `koanf:"family"`
}

// Validate validates the chain configuration.
func (cfg *ChainConfig) Validate() error {
	if cfg.ChainID == "" {
		return fmt.Errorf("no chain_id provided")
	}
	_, err := cfg.TxFamily()
	return err
}

// TxFamily returns the configured envelope family.
func (cfg *ChainConfig) TxFamily() (tx.Family, error) {
	var f tx.Family
	if cfg.Family == "" {
		return tx.FamilyCosmos, nil
	}
	if err := f.Set(cfg.Family); err != nil {
		return f, err
	}
	return f, nil
}

// SignerConfig configures the local secp256k1 signer.
type SignerConfig struct {
	// KeyFile holds a hex-encoded 32-byte private key.
	KeyFile string `koanf:"key_file"`
}

// Validate validates the signer configuration.
func (cfg *SignerConfig) Validate() error {
	if cfg.KeyFile == "" {
		return fmt.Errorf("no key_file provided")
	}
	return nil
}

// JournalConfig configures the sign journal.
type JournalConfig struct {
	// Path is the pogreb database directory.
	Path string `koanf:"path"`
}

// Validate validates the journal configuration.
func (cfg *JournalConfig) Validate() error {
	if cfg.Path == "" {
		return fmt.Errorf("no path provided")
	}
	return nil
}

// ServerConfig contains the API server configuration.
type ServerConfig struct {
	// Endpoint is the service endpoint from which to serve the API.
	Endpoint string `koanf:"endpoint"`
}

// Validate validates the server configuration.
func (cfg *ServerConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("malformed server endpoint '%s'", cfg.Endpoint)
	}
	return nil
}

// LogConfig contains the logging configuration.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
	File   string `koanf:"file"`
}

// Validate validates the logging configuration.
func (cfg *LogConfig) Validate() error {
	if _, err := log.ParseFormat(cfg.Format); err != nil {
		return err
	}
	_, err := log.ParseLevel(cfg.Level)
	return err
}

// MetricsConfig contains the metrics configuration.
type MetricsConfig struct {
	PullEndpoint string `koanf:"pull_endpoint"`
}

// Validate validates the metrics configuration.
func (cfg *MetricsConfig) Validate() error {
	if cfg.PullEndpoint == "" {
		return fmt.Errorf("malformed Prometheus pull endpoint '%s'", cfg.PullEndpoint)
	}
	return nil
}

// InitConfig initializes configuration from file.
func InitConfig(f string) (*Config, error) {
	return initConfig(file.Provider(f))
}

func initConfig(p koanf.Provider) (*Config, error) {
	var config Config
	k := koanf.New(".")

	// Load configuration from the yaml config.
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, err
	}

	// Load environment variables and merge into the loaded config.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		// `__` is used as a hierarchy delimiter.
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	// Unmarshal into config.
	if err := k.Unmarshal("", &config); err != nil {
		return nil, err
	}

	// Validate config.
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
