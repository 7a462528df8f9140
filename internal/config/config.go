// Package config loads service settings from defaults, an optional YAML
// file and SYMEQ_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/njchilds90/symeq"
)

const EnvPrefix = "SYMEQ"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Parsing ParsingConfig `mapstructure:"parsing"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ParsingConfig holds the parser defaults requests fall back to.
type ParsingConfig struct {
	StrictSyntax bool `mapstructure:"strict_syntax"`
	Rationalise  bool `mapstructure:"rationalise"`
	Simplify     bool `mapstructure:"simplify"`
}

func (p ParsingConfig) Defaults() symeq.ParseDefaults {
	return symeq.ParseDefaults{StrictSyntax: p.StrictSyntax, Rationalise: p.Rationalise, Simplify: p.Simplify}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("parsing.strict_syntax", symeq.DefaultParseDefaults.StrictSyntax)
	v.SetDefault("parsing.rationalise", symeq.DefaultParseDefaults.Rationalise)
	v.SetDefault("parsing.simplify", symeq.DefaultParseDefaults.Simplify)
}

// Load reads the configuration into v. path may be empty; values from the
// environment override the file, which overrides the defaults. Flags bound
// to v beforehand take precedence over all of them.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, errors.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return &cfg, nil
}
