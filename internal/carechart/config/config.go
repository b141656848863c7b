package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ClusterCfg struct {
	Hosts             []string      `mapstructure:"hosts"`
	Keyspace          string        `mapstructure:"keyspace"`
	ReplicationFactor int           `mapstructure:"replication_factor"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type LoggingCfg struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Cluster ClusterCfg `mapstructure:"cluster"`
	Logging LoggingCfg `mapstructure:"logging"`
}

var cfg *Config

// Load populates global config from a viper instance. Environment
// variables override file values (CARECHART_CLUSTER_KEYSPACE etc.).
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("cluster.hosts", []string{"localhost"})
	v.SetDefault("cluster.keyspace", "healthcare")
	v.SetDefault("cluster.replication_factor", 1)
	v.SetDefault("cluster.timeout", "10s")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("carechart")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Cluster.ReplicationFactor < 1 {
		return fmt.Errorf("cluster.replication_factor must be >= 1, got %d", c.Cluster.ReplicationFactor)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
