package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Codec   CodecConfig   `yaml:"codec"`
	Input   InputConfig   `yaml:"input"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CodecConfig struct {
	// MaxDepth 组件嵌套上限, 0 表示使用默认值
	MaxDepth int `yaml:"max_depth"`
}

type InputConfig struct {
	// CompressionThreshold 为负表示数据包流未启用压缩
	CompressionThreshold int `yaml:"compression_threshold"`
}

// Default 返回未提供配置文件时使用的配置
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Codec:   CodecConfig{MaxDepth: 0},
		Input:   InputConfig{CompressionThreshold: -1},
	}
}

// Load 在默认配置之上读取 YAML 文件, 文件中未出现的字段保留默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
