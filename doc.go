// Package eventrec 是一个事件推荐引擎（Event Recommender）。
//
// 设计要点：
// - 三路召回：内容相似（TF-IDF）、用户协同过滤（u2i）、热门兜底
// - 加权融合：两路归一化分数按权重合并，候选取并集
// - 降级链：协同+内容 → 仅内容 → 热门，保证"有用户就有结果"
// - Pipeline 可扩展：过滤/截断等后置逻辑通过 Node 串联
package eventrec

import "github.com/eventrec/eventrec/pipeline"

// 轻量 facade：便于直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
