package recall

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/matrix"
	"github.com/eventrec/eventrec/pkg/norm"
	"github.com/eventrec/eventrec/pkg/utils"
)

// CollaborativeRecall 是基于用户的协同过滤召回源（User-CF / u2i）。
//
// 核心思想："兴趣相似的用户，喜欢相似的事件"
//
// 算法流程：
//  1. 交互日志 → 聚合矩阵（事件范围限定为 upcoming，时间窗口 Window）
//  2. 目标用户行 vs 其他每个用户行，余弦相似度（事件权重空间）
//  3. 取 k 个最近邻（k 被有交互的其他用户数截断，排除自身）
//  4. 邻居交互过的每个事件累积 similarity * weight
//  5. 降序取 TopK，分数 min-max 归一化
//
// 置信度：归一化后最大分低于 ConfidenceFloor 时整份结果作废（NO_DATA）——
// 低置信噪声不如不给。
//
// 错误语义：
//   - 矩阵为空 → NO_DATA（结构性，走降级）
//   - 目标用户不在矩阵中（窗口内无合规交互）→ USER_NOT_FOUND
type CollaborativeRecall struct {
	Interactions core.InteractionSource
	Events       core.EventSource

	// Window 交互回溯窗口；0 表示不限
	Window time.Duration

	// Neighbors 近邻数 k，<= 0 时默认 20
	Neighbors int

	// TopK 返回 TopK 个事件，<= 0 时默认 20
	TopK int

	// ConfidenceFloor 置信下限，< 0 表示关闭；0 视为未设置，使用默认 0.1
	ConfidenceFloor float64

	// Now 供测试注入时钟
	Now func() time.Time
}

func (r *CollaborativeRecall) Name() string {
	return "recall.cf"
}

func (r *CollaborativeRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Interactions == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	m, titles, err := r.buildMatrix(ctx)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(rctx.UserID) {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUserNotFound,
			fmt.Sprintf("user %s has no qualifying interactions", rctx.UserID))
	}

	neighbors := r.nearestNeighbors(m, rctx.UserID, r.neighborCount())
	scores := make(map[string]float64)
	for _, nb := range neighbors {
		for eventID, weight := range m.Row(nb.userID) {
			scores[eventID] += nb.similarity * weight
		}
	}
	if len(scores) == 0 {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeNoData,
			"no neighbor signal")
	}

	items := make([]*core.Item, 0, len(scores))
	for eventID, score := range scores {
		it := core.NewItem(eventID)
		it.Title = titles[eventID]
		it.Score = score
		items = append(items, it)
	}
	sortRanked(items)

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	items = truncate(items, topK)

	raw := make([]float64, len(items))
	for i, it := range items {
		raw[i] = it.Score
	}
	normalized := norm.MinMax(raw)

	var maxScore float64
	for _, s := range normalized {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore < r.confidenceFloor() {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeNoData,
			fmt.Sprintf("confidence %.3f below floor", maxScore))
	}

	for i, s := range normalized {
		items[i].Score = s
		items[i].PutLabel("recall_source", utils.Label{Value: "cf", Source: "recall"})
	}
	return items, nil
}

// SimilarUsers 返回与目标用户最相似的 k 个用户 ID（按相似度降序）。
func (r *CollaborativeRecall) SimilarUsers(ctx context.Context, userID string, k int) ([]string, error) {
	m, _, err := r.buildMatrix(ctx)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(userID) {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUserNotFound,
			fmt.Sprintf("user %s has no qualifying interactions", userID))
	}
	if k <= 0 {
		k = 5
	}
	neighbors := r.nearestNeighbors(m, userID, k)
	out := make([]string, len(neighbors))
	for i, nb := range neighbors {
		out[i] = nb.userID
	}
	return out, nil
}

func (r *CollaborativeRecall) buildMatrix(ctx context.Context) (*matrix.Matrix, map[string]string, error) {
	var scope map[string]struct{}
	titles := make(map[string]string)
	if r.Events != nil {
		events, err := r.Events.ListEvents(ctx)
		if err != nil {
			return nil, nil, err
		}
		upcoming := core.FilterUpcoming(events)
		scope = core.EventIDSet(upcoming)
		for _, ev := range upcoming {
			titles[ev.ID] = ev.Title
		}
	}

	interactions, err := r.Interactions.ListInteractions(ctx)
	if err != nil {
		return nil, nil, err
	}

	b := &matrix.Builder{Window: r.Window, Scope: scope, Now: r.Now}
	m, err := b.Build(interactions)
	if err != nil {
		return nil, nil, err
	}
	return m, titles, nil
}

type neighbor struct {
	userID     string
	similarity float64
}

// nearestNeighbors 返回与目标用户余弦相似度最高的 k 个用户（排除自身与零相似）。
// k 被其他有交互用户的数量截断。
func (r *CollaborativeRecall) nearestNeighbors(m *matrix.Matrix, userID string, k int) []neighbor {
	target := m.Row(userID)
	neighbors := make([]neighbor, 0, len(m.Users))
	for _, other := range m.Users {
		if other == userID {
			continue
		}
		sim := cosineForMaps(target, m.Row(other))
		if sim > 0 {
			neighbors = append(neighbors, neighbor{userID: other, similarity: sim})
		}
	}
	// Users 已排序，稳定排序保证同相似度时按 ID 确定顺序
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (r *CollaborativeRecall) neighborCount() int {
	if r.Neighbors > 0 {
		return r.Neighbors
	}
	return 20
}

func (r *CollaborativeRecall) confidenceFloor() float64 {
	if r.ConfidenceFloor < 0 {
		return 0
	}
	if r.ConfidenceFloor == 0 {
		return 0.1
	}
	return r.ConfidenceFloor
}

// cosineForMaps 计算两个稀疏向量（map 形式）的余弦相似度。
func cosineForMaps(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ Source = (*CollaborativeRecall)(nil)
