package recall

import (
	"context"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/feature"
	"github.com/eventrec/eventrec/pkg/norm"
	"github.com/eventrec/eventrec/pkg/utils"
)

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 算法流程：
//  1. 取全部事件，打分前过滤到 upcoming 候选集（历史事件从不进入向量空间）
//  2. 在候选集的文本特征串上拟合 TF-IDF（词表只来自事件语料）
//  3. 将用户特征串投影到同一空间，逐事件算余弦相似度
//  4. 降序排列（同分按事件 ID 升序），取 TopK，对选中分数做 min-max 归一化
//
// 边界：
//   - 用户不存在 → USER_NOT_FOUND
//   - 相似度全为 0（与任何事件无词重叠）→ 返回空列表：
//     零相关的推荐等价于没有推荐，不凑数
//   - 相似度全部相等 → 归一化后全 0（无排序信息策略）
type ContentRecall struct {
	Events core.EventSource
	Users  core.UserSource

	// TopK 返回 TopK 个事件，<= 0 时使用默认 20
	TopK int
}

func (r *ContentRecall) Name() string {
	return "recall.content"
}

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Events == nil || r.Users == nil || rctx == nil {
		return nil, nil
	}

	// 优先使用请求上下文里已解析的画像
	user := rctx.User
	if user == nil {
		var err error
		user, err = r.Users.GetUser(ctx, rctx.UserID)
		if err != nil {
			return nil, err
		}
	}

	events, err := r.Events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	upcoming := core.FilterUpcoming(events)
	if len(upcoming) == 0 {
		return nil, nil
	}

	corpus := make([]string, len(upcoming))
	for i, ev := range upcoming {
		corpus[i] = feature.EventText(ev)
	}
	model := feature.Fit(corpus)
	sims := model.Similarities(feature.UserText(user))

	var total float64
	for _, s := range sims {
		total += s
	}
	if total == 0 {
		return []*core.Item{}, nil
	}

	items := make([]*core.Item, len(upcoming))
	for i, ev := range upcoming {
		it := core.NewItem(ev.ID)
		it.Title = ev.Title
		it.Score = sims[i]
		items[i] = it
	}
	sortRanked(items)

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	items = truncate(items, topK)

	// 对选中的分数归一化到 [0,1]，交给融合阶段
	scores := make([]float64, len(items))
	for i, it := range items {
		scores[i] = it.Score
	}
	for i, s := range norm.MinMax(scores) {
		items[i].Score = s
		items[i].PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
	}

	return items, nil
}

var _ Source = (*ContentRecall)(nil)
