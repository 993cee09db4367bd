// Package config 提供引擎配置与 Pipeline Node 工厂。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig 是推荐引擎的运行参数。
// 零值字段在 Normalize 时回填默认值，因此可以只配置关心的项。
type EngineConfig struct {
	// CFWeight / ContentWeight 混合融合的两路权重
	CFWeight      float64 `yaml:"cf_weight"`
	ContentWeight float64 `yaml:"content_weight"`

	// CFWindowDays 协同过滤的交互回溯窗口（天）
	CFWindowDays int `yaml:"cf_window_days"`

	// PopularityWindowDays 热门统计窗口（天），应比协同窗口更宽
	PopularityWindowDays int `yaml:"popularity_window_days"`

	// PopularityWeighted 为 true 时热门榜按交互权重求和而非计数
	PopularityWeighted bool `yaml:"popularity_weighted"`

	// Neighbors 协同过滤近邻数
	Neighbors int `yaml:"neighbors"`

	// ConfidenceFloor 协同结果的最低可信分；< 0 表示关闭
	ConfidenceFloor float64 `yaml:"confidence_floor"`

	// TopK 每路召回与最终结果的数量上限
	TopK int `yaml:"top_k"`

	// FetchTimeoutSeconds 单次数据源读取的超时（秒）
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// Default 返回一份默认配置。
func Default() *EngineConfig {
	return &EngineConfig{
		CFWeight:             0.8,
		ContentWeight:        0.2,
		CFWindowDays:         7,
		PopularityWindowDays: 28,
		Neighbors:            20,
		ConfidenceFloor:      0.1,
		TopK:                 20,
		FetchTimeoutSeconds:  5,
	}
}

// Normalize 回填零值字段的默认值，返回自身方便链式调用。
func (c *EngineConfig) Normalize() *EngineConfig {
	d := Default()
	if c.CFWeight == 0 && c.ContentWeight == 0 {
		c.CFWeight, c.ContentWeight = d.CFWeight, d.ContentWeight
	}
	if c.CFWindowDays <= 0 {
		c.CFWindowDays = d.CFWindowDays
	}
	if c.PopularityWindowDays <= 0 {
		c.PopularityWindowDays = d.PopularityWindowDays
	}
	if c.Neighbors <= 0 {
		c.Neighbors = d.Neighbors
	}
	if c.ConfidenceFloor == 0 {
		c.ConfidenceFloor = d.ConfidenceFloor
	}
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = d.FetchTimeoutSeconds
	}
	return c
}

// CFWindow 协同过滤窗口时长。
func (c *EngineConfig) CFWindow() time.Duration {
	return time.Duration(c.CFWindowDays) * 24 * time.Hour
}

// PopularityWindow 热门统计窗口时长。
func (c *EngineConfig) PopularityWindow() time.Duration {
	return time.Duration(c.PopularityWindowDays) * 24 * time.Hour
}

// FetchTimeout 数据源读取超时。
func (c *EngineConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Load 从 YAML 文件加载引擎配置并回填默认值。
func Load(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.Normalize(), nil
}
