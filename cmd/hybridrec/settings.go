package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings 是 CLI 的全部配置，来源优先级：flag > 环境变量（HYBRIDREC_*）> 配置文件 > 默认值。
type Settings struct {
	Log      LogSettings    `mapstructure:"log"`
	Data     DataSettings   `mapstructure:"data"`
	Redis    RedisSettings  `mapstructure:"redis"`
	Output   OutputSettings `mapstructure:"output"`
	Pipeline string         `mapstructure:"pipeline"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataSettings 指定数据来源。Source 为 auto 时：
// 有 movies 路径则按扩展名选择 csv/json，否则使用 redis。
type DataSettings struct {
	Source  string `mapstructure:"source"`
	Movies  string `mapstructure:"movies"`
	Ratings string `mapstructure:"ratings"`
}

type RedisSettings struct {
	Addr       string `mapstructure:"addr"`
	DB         int    `mapstructure:"db"`
	CatalogKey string `mapstructure:"catalog_key"`
	RatingsKey string `mapstructure:"ratings_key"`
}

type OutputSettings struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("data.source", "auto")
	v.SetDefault("data.movies", "")
	v.SetDefault("data.ratings", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.catalog_key", "hybridrec:movies")
	v.SetDefault("redis.ratings_key", "hybridrec:ratings")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", "auto")
	v.SetDefault("pipeline", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HYBRIDREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// loadSettings 读取可选配置文件并解析为 Settings。
func loadSettings(v *viper.Viper, cfgFile string) (*Settings, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".hybridrec")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hybridrec")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.Data.Source {
	case "auto", "csv", "json", "redis":
	default:
		return fmt.Errorf("data.source must be auto, csv, json or redis, got %q", s.Data.Source)
	}
	switch s.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be text or json, got %q", s.Output.Format)
	}
	switch s.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", s.Output.Color)
	}
	return nil
}

// source 解析 auto 为具体的数据源类型。
func (d DataSettings) source() string {
	if d.Source != "auto" {
		return d.Source
	}
	switch {
	case d.Movies == "":
		return "redis"
	case strings.HasSuffix(strings.ToLower(d.Movies), ".json"):
		return "json"
	default:
		return "csv"
	}
}
