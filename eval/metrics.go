// Package eval 提供推荐结果的离线评估指标。
// 输入是推荐列表与用户实际交互过的事件集合（ground truth）。
package eval

import (
	"github.com/eventrec/eventrec/core"
)

// PrecisionAt 计算 Precision@K：前 K 个推荐中命中真实交互的比例。
// K <= 0 或推荐为空时返回 0。
func PrecisionAt(recommended []*core.Item, actual map[string]struct{}, k int) float64 {
	if k <= 0 || len(recommended) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}

	hits := 0
	for _, it := range recommended[:k] {
		if _, ok := actual[it.ID]; ok {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAt 计算 Recall@K：真实交互中被前 K 个推荐覆盖的比例。
// 真实集合为空时返回 0。
func RecallAt(recommended []*core.Item, actual map[string]struct{}, k int) float64 {
	if k <= 0 || len(actual) == 0 || len(recommended) == 0 {
		return 0
	}
	if k > len(recommended) {
		k = len(recommended)
	}

	hits := 0
	for _, it := range recommended[:k] {
		if _, ok := actual[it.ID]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(actual))
}

// ActualSet 从交互日志提取某用户实际交互过的事件集合。
func ActualSet(interactions []*core.Interaction, userID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, in := range interactions {
		if in.UserID == userID {
			set[in.EventID] = struct{}{}
		}
	}
	return set
}
