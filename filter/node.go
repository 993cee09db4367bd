package filter

import (
	"context"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pipeline"
	"github.com/eventrec/eventrec/pkg/utils"
)

// FilterNode 组合多个过滤器。任何一个过滤器命中，该候选即被剔除。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		dropped := false
		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 单个过滤器出错不中断整条流水线
				continue
			}
			if ok {
				dropped = true
				reason = f.Name()
				break
			}
		}

		if dropped {
			item.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

var _ pipeline.Node = (*FilterNode)(nil)
