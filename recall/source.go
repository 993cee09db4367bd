// Package recall 提供三类独立的召回源：内容相似、协同过滤、热门。
// 每个召回源产出一份带分数的候选列表；融合发生在 rank 包。
package recall

import (
	"context"
	"sort"

	"github.com/eventrec/eventrec/core"
)

// Source 表示一个可复用的召回源（内容/协同/热门）。
// 内容与协同之间没有数据依赖，可以并发 fan-out 执行。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// sortRanked 按分数降序排列候选；同分按事件 ID 升序，保证结果确定。
func sortRanked(items []*core.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}

// truncate 截取前 n 个；n <= 0 表示不截断。
func truncate(items []*core.Item, n int) []*core.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
