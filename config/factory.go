package config

import (
	"context"
	"time"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/filter"
	"github.com/eventrec/eventrec/pipeline"
	"github.com/eventrec/eventrec/pkg/conv"
	"github.com/eventrec/eventrec/recall"
	"github.com/eventrec/eventrec/rerank"
)

// Sources 是 Node 工厂可用的外部依赖集合。
// 工厂只做配置到实例的装配，不负责建连。
type Sources struct {
	Events       core.EventSource
	Interactions core.InteractionSource
	Store        core.KeyValueStore
}

// DefaultFactory 返回注册了内置 Node 的默认工厂。
//
// 支持的 Node 类型：
//   - filter        组合规则/名单过滤器
//   - rerank.topn   Top-N 截断
//   - recall.hot    热门召回（作为独立 Node 使用时忽略输入 items）
func DefaultFactory(deps Sources) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("filter", buildFilterNode(deps))
	factory.Register("rerank.topn", buildTopNNode)
	factory.Register("recall.hot", buildHotNode(deps))

	return factory
}

func buildFilterNode(deps Sources) func(map[string]interface{}) (pipeline.Node, error) {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		var filters []filter.Filter

		if expr := conv.ConfigGet[string](config, "rule", ""); expr != "" {
			filters = append(filters, filter.NewRuleFilter(expr))
		}
		if ids := conv.SliceAnyToString(config["blocklist"]); len(ids) > 0 {
			filters = append(filters, &filter.BlocklistFilter{EventIDs: ids})
		}
		if key := conv.ConfigGet[string](config, "blocklist_key", ""); key != "" && deps.Store != nil {
			filters = append(filters, &filter.BlocklistFilter{Store: deps.Store, Key: key})
		}

		return &filter.FilterNode{Filters: filters}, nil
	}
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(config, "n", 0)}, nil
}

func buildHotNode(deps Sources) func(map[string]interface{}) (pipeline.Node, error) {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		hot := &recall.Hot{
			Interactions: deps.Interactions,
			Events:       deps.Events,
			Weighted:     conv.ConfigGet[bool](config, "weighted", false),
			TopK:         conv.ConfigGetInt(config, "top_k", 0),
		}
		if days := conv.ConfigGetInt(config, "window_days", 0); days > 0 {
			hot.Window = time.Duration(days) * 24 * time.Hour
		}
		if key := conv.ConfigGet[string](config, "key", ""); key != "" && deps.Store != nil {
			hot.Store = deps.Store
			hot.Key = key
		}
		return &hotNode{hot: hot}, nil
	}
}

// hotNode 把 recall.Hot 包装成 pipeline.Node：召回 Node 生成候选，忽略输入。
type hotNode struct {
	hot *recall.Hot
}

func (n *hotNode) Name() string        { return n.hot.Name() }
func (n *hotNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *hotNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return n.hot.Recall(ctx, rctx)
}
