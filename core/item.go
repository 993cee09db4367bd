package core

import "github.com/eventrec/eventrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选事件 + 分数 + 可解释标签。
// Score 是排序依据；Labels 记录来源与策略信息，全链路透传。
// Item 只在单次请求内存活，从不落盘。
type Item struct {
	ID     string
	Title  string
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// ScoreMap 将条目列表转为 eventID -> score 映射，是融合阶段的通用货币。
func ScoreMap(items []*Item) map[string]float64 {
	m := make(map[string]float64, len(items))
	for _, it := range items {
		if it != nil {
			m[it.ID] = it.Score
		}
	}
	return m
}
