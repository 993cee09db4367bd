package filter

import (
	"context"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器。
// 表达式对每个候选求值，结果为 true 表示过滤掉该候选。
//
// 可用变量：
//   - item：候选事件（id / title / score / labels）
//   - label：标签快捷访问，label.recall_source 直接取标签值
//   - rctx：请求上下文（request_id / user_id / params）
//
// 示例：
//   - 过滤低分候选：item.score < 0.05
//   - 只保留协同召回：label.recall_source != "cf"
type RuleFilter struct {
	// Expr CEL 表达式；空表达式不过滤任何候选
	Expr string
}

// NewRuleFilter 创建一个规则过滤器。
func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	ok, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		// 表达式错误时保留候选，由 FilterNode 记录并继续
		return false, err
	}
	return ok, nil
}

var _ Filter = (*RuleFilter)(nil)
