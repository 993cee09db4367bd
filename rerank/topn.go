// Package rerank 在排序结果上做最终修饰，目前只有 Top-N 截断。
package rerank

import (
	"context"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pipeline"
)

// TopNNode 在排序之后截取前 N 个候选，控制最终返回数量。
type TopNNode struct {
	// N 要保留的数量；N <= 0 表示不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
