package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/hybridrec/pipeline"
)

// 使用配置驱动时，需在 main 或入口处 import _ "github.com/rushteam/hybridrec/config/builders"
// 以触发内置 Node（recall.catalog、rank.hybrid、rerank.topn 等）的 init 注册。

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表构建的 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// 排序链路必须以全量召回开头，并在其后包含混合排序
const (
	requiredRecall = "recall.catalog"
	requiredRank   = "rank.hybrid"
)

// ValidatePipelineConfig 校验 pipeline 配置：
//   - 至少一个 node，且所有 node 类型均已注册
//   - 第一个 node 为 recall.catalog，之后出现 rank.hybrid
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return fmt.Errorf("pipeline config is nil")
	}
	nodes := cfg.Pipeline.Nodes
	if len(nodes) == 0 {
		return fmt.Errorf("pipeline %q has no nodes", cfg.Pipeline.Name)
	}
	if nodes[0].Type != requiredRecall {
		return fmt.Errorf("pipeline %q must start with %s, got %q", cfg.Pipeline.Name, requiredRecall, nodes[0].Type)
	}
	ranked := false
	for _, nc := range nodes[1:] {
		if nc.Type == requiredRecall {
			return fmt.Errorf("pipeline %q has more than one %s node", cfg.Pipeline.Name, requiredRecall)
		}
		if nc.Type == requiredRank {
			ranked = true
		}
	}
	if !ranked {
		return fmt.Errorf("pipeline %q has no %s node after %s", cfg.Pipeline.Name, requiredRank, requiredRecall)
	}
	supported := SupportedTypes()
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	for _, nc := range cfg.Pipeline.Nodes {
		if _, ok := defaultBuilders[nc.Type]; !ok {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}

// Build 校验并构建 Pipeline。
func Build(cfg *pipeline.Config) (*pipeline.Pipeline, error) {
	if err := ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	return cfg.BuildPipeline(DefaultFactory())
}
