package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 描述一条后处理流水线：引擎产出的候选依次流过 nodes 声明的节点。
// 节点类型与 config 包注册的构建器对应：filter（规则/黑名单过滤）、
// rerank.topn（截断）、recall.hot（热门补召回）。
type Config struct {
	Pipeline struct {
		Name  string       `yaml:"name" json:"name"`
		Nodes []NodeConfig `yaml:"nodes" json:"nodes"`
	} `yaml:"pipeline" json:"pipeline"`
}

// NodeConfig 是单个节点的声明：type 选定构建器，config 原样传给它。
type NodeConfig struct {
	Type   string                 `yaml:"type" json:"type"`
	Config map[string]interface{} `yaml:"config" json:"config"`
}

// LoadFromYAML 从 YAML 文件加载流水线配置。
func LoadFromYAML(path string) (*Config, error) {
	return load(path, yaml.Unmarshal, "yaml")
}

// LoadFromJSON 从 JSON 文件加载流水线配置。
func LoadFromJSON(path string) (*Config, error) {
	return load(path, json.Unmarshal, "json")
}

func load(path string, decode func([]byte, interface{}) error, format string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return &cfg, nil
}

// BuildPipeline 按声明顺序构建节点并组装流水线。
// 节点构建器在 NodeFactory 中注册；默认注册表见 config.DefaultFactory。
func (c *Config) BuildPipeline(factory *NodeFactory) (*Pipeline, error) {
	nodes := make([]Node, 0, len(c.Pipeline.Nodes))
	for _, nc := range c.Pipeline.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %s: %w", nc.Type, err)
		}
		nodes = append(nodes, node)
	}
	return &Pipeline{Nodes: nodes}, nil
}

// Builder 由节点配置构建 Node 实例。
type Builder func(map[string]interface{}) (Node, error)

// NodeFactory 是节点类型到构建器的注册表。
// 放在 pipeline 包而非 config 包持有，注册动作反过来，避免循环依赖。
type NodeFactory struct {
	builders map[string]Builder
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{builders: make(map[string]Builder)}
}

// Register 注册节点构建器，同名覆盖。
func (f *NodeFactory) Register(nodeType string, builder Builder) {
	f.builders[nodeType] = builder
}

// Build 按类型查找构建器并构建节点。
func (f *NodeFactory) Build(nodeType string, config map[string]interface{}) (Node, error) {
	builder, ok := f.builders[nodeType]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}
	return builder(config)
}
