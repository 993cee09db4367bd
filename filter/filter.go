// Package filter 提供候选过滤能力：规则过滤（CEL 表达式）与屏蔽名单过滤。
package filter

import (
	"context"

	"github.com/eventrec/eventrec/core"
)

// Filter 判断一个候选事件是否应该被过滤掉。
// 返回 true 表示过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
