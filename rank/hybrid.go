// Package rank 负责把多路召回的候选融合成一份最终排序。
package rank

import (
	"sort"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pkg/utils"
)

// HybridFuser 加权融合协同与内容两路召回。
//
// 融合公式（两路分数都已各自归一化到 [0,1]）：
//
//	final = CFWeight * cf + ContentWeight * content
//
// 要点：
//   - 候选集取两路的并集，某一路缺失的事件按 0 分参与，不会被丢弃
//   - 仅出现在某一路的事件仍可凭该路的权重进入最终结果
//   - 权重不做归一化校验，调用方自行保证语义（默认 0.8 / 0.2）
type HybridFuser struct {
	// CFWeight 协同路权重，<= 0 时与 ContentWeight 一起退回默认 0.8/0.2
	CFWeight float64

	// ContentWeight 内容路权重
	ContentWeight float64

	// TopK 返回 TopK 个事件，<= 0 时不截断
	TopK int
}

func (f *HybridFuser) weights() (float64, float64) {
	if f.CFWeight <= 0 && f.ContentWeight <= 0 {
		return 0.8, 0.2
	}
	return f.CFWeight, f.ContentWeight
}

// Fuse 融合两路候选，返回按融合分降序的新列表（同分按事件 ID 升序）。
// 任意一路可以为空；两路都为空时返回空列表。
func (f *HybridFuser) Fuse(cf, content []*core.Item) []*core.Item {
	cfWeight, contentWeight := f.weights()

	cfScores := core.ScoreMap(cf)
	contentScores := core.ScoreMap(content)

	titles := make(map[string]string, len(cf)+len(content))
	for _, it := range append(append([]*core.Item{}, cf...), content...) {
		if it.Title != "" {
			titles[it.ID] = it.Title
		}
	}

	union := make(map[string]struct{}, len(cfScores)+len(contentScores))
	for id := range cfScores {
		union[id] = struct{}{}
	}
	for id := range contentScores {
		union[id] = struct{}{}
	}

	out := make([]*core.Item, 0, len(union))
	for id := range union {
		it := core.NewItem(id)
		it.Title = titles[id]
		it.Score = cfWeight*cfScores[id] + contentWeight*contentScores[id]
		it.PutLabel("rank_strategy", utils.Label{Value: "hybrid", Source: "rank"})
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if f.TopK > 0 && len(out) > f.TopK {
		out = out[:f.TopK]
	}
	return out
}
