package conf

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/torp-app/devis-ingest/internal/knowledge/types"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
)

// EnvPrefix prefixes every environment override, e.g. DEVIS_INGEST_MAX_TOKENS.
const EnvPrefix = "DEVIS"

type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Log    logger.Config `mapstructure:"log"`
	Ingest IngestConfig  `mapstructure:"ingest"`
	Worker WorkerConfig  `mapstructure:"worker"`
	Docx   DocxConfig    `mapstructure:"docx"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IngestConfig drives sanitizing and chunking.
type IngestConfig struct {
	MaxBytes    int                 `mapstructure:"max_bytes"`
	MaxTokens   int                 `mapstructure:"max_tokens"`
	Strategy    types.ChunkStrategy `mapstructure:"strategy"`
	Overlap     int                 `mapstructure:"overlap"`
	Encoding    string              `mapstructure:"encoding"`
	MaxFileSize int64               `mapstructure:"max_file_size"`
}

type WorkerConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type DocxConfig struct {
	LicenseKey string `mapstructure:"license_key"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	logDefaults := logger.DefaultConfig()
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.output", logDefaults.Output)
	v.SetDefault("log.enable_caller", logDefaults.EnableCaller)
	v.SetDefault("log.enable_stacktrace", logDefaults.EnableStacktrace)
	v.SetDefault("log.file.filename", logDefaults.File.Filename)
	v.SetDefault("log.file.max_size", logDefaults.File.MaxSize)
	v.SetDefault("log.file.max_age", logDefaults.File.MaxAge)
	v.SetDefault("log.file.max_backups", logDefaults.File.MaxBackups)
	v.SetDefault("log.file.compress", logDefaults.File.Compress)

	v.SetDefault("ingest.max_bytes", 500000)
	v.SetDefault("ingest.max_tokens", 1000)
	v.SetDefault("ingest.strategy", string(types.ChunkStrategyParagraph))
	v.SetDefault("ingest.overlap", 0)
	v.SetDefault("ingest.encoding", "cl100k_base")
	v.SetDefault("ingest.max_file_size", 20<<20)

	v.SetDefault("worker.workers", 8)
	v.SetDefault("worker.queue_size", 256)

	v.SetDefault("docx.license_key", "")
}

// LoadConfig reads the YAML file at path, then applies DEVIS_* environment
// overrides. An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}

	in := c.Ingest
	if !in.Strategy.Valid() {
		return fmt.Errorf("invalid ingest.strategy %q, must be paragraph, recursive or token", in.Strategy)
	}
	if in.MaxBytes < 0 {
		return fmt.Errorf("ingest.max_bytes must not be negative, got %d", in.MaxBytes)
	}
	if in.MaxTokens < 0 {
		return fmt.Errorf("ingest.max_tokens must not be negative, got %d", in.MaxTokens)
	}
	if in.Overlap < 0 || (in.MaxTokens > 0 && in.Overlap >= in.MaxTokens) {
		return fmt.Errorf("ingest.overlap must be in [0, max_tokens), got %d", in.Overlap)
	}
	if in.MaxFileSize <= 0 {
		return fmt.Errorf("ingest.max_file_size must be positive, got %d", in.MaxFileSize)
	}

	if c.Worker.QueueSize < 0 {
		return fmt.Errorf("worker.queue_size must not be negative, got %d", c.Worker.QueueSize)
	}
	return nil
}
