// Package norm 提供分数归一化。所有召回源共用同一套规则，
// 保证融合阶段拿到的分数在同一量纲上。
package norm

// MinMax 对分数列表做 min-max 归一化：(x - min) / (max - min)，结果落在 [0,1]。
// 全部相等（包括长度为 1）时返回全 0：相同的分数不携带排序信息，
// 这是策略而非错误，任何调用点都不允许除零。
func MinMax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	out := make([]float64, len(scores))
	if max == min {
		return out
	}
	span := max - min
	for i, s := range scores {
		out[i] = (s - min) / span
	}
	return out
}

// MinMaxMap 对 score map 做 min-max 归一化，规则与 MinMax 一致。
func MinMaxMap(scores map[string]float64) map[string]float64 {
	if len(scores) == 0 {
		return map[string]float64{}
	}

	first := true
	var min, max float64
	for _, s := range scores {
		if first {
			min, max = s, s
			first = false
			continue
		}
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	out := make(map[string]float64, len(scores))
	if max == min {
		for k := range scores {
			out[k] = 0
		}
		return out
	}
	span := max - min
	for k, s := range scores {
		out[k] = (s - min) / span
	}
	return out
}
