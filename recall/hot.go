package recall

import (
	"context"
	"fmt"
	"time"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pkg/utils"
)

// Hot 是热门召回源：按近期交互量排序，不依赖目标用户。
// 这是个体策略（内容/协同）给不出可信结果时的终极兜底。
//
// 两种工作模式：
//   - Store + Key 配置时优先读取预计算热门榜（有序集合，按分数降序）
//   - 否则从交互日志现算：upcoming 范围内、窗口内按事件计数（或加权求和）
//
// 口径：默认统计交互条数而非权重和——热度反映关注量，不关心深度；
// Weighted 打开后改为类型权重求和。
// 热门窗口应比协同窗口更宽：热度反映较长趋势，而非瞬时活动。
type Hot struct {
	Interactions core.InteractionSource
	Events       core.EventSource

	// Store/Key 预计算热门榜（可选）
	Store core.KeyValueStore
	Key   string

	// Window 统计窗口；0 表示不限
	Window time.Duration

	// Weighted 为 true 时按交互类型权重求和，否则按条数计数
	Weighted bool

	// TopK 返回 TopK 个事件，<= 0 时默认 20
	TopK int

	// Now 供测试注入时钟
	Now func() time.Time
}

func (r *Hot) Name() string {
	return "recall.hot"
}

func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	// 优先走预计算榜单
	if r.Store != nil && r.Key != "" {
		items, err := r.fromStore(ctx, topK)
		if err == nil && len(items) > 0 {
			return items, nil
		}
	}
	return r.fromInteractions(ctx, topK)
}

// fromStore 从有序集合读取预计算热门榜。
func (r *Hot) fromStore(ctx context.Context, topK int) ([]*core.Item, error) {
	members, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Item, 0, len(members))
	for _, id := range members {
		score, err := r.Store.ZScore(ctx, r.Key, id)
		if err != nil {
			// 读不到分数的成员跳过，避免 0 分混进按分数降序的榜单
			continue
		}
		it := core.NewItem(id)
		it.Score = score
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// fromInteractions 从交互日志现算热门榜。
func (r *Hot) fromInteractions(ctx context.Context, topK int) ([]*core.Item, error) {
	if r.Interactions == nil {
		return nil, nil
	}

	var scope map[string]struct{}
	titles := make(map[string]string)
	if r.Events != nil {
		events, err := r.Events.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		upcoming := core.FilterUpcoming(events)
		scope = core.EventIDSet(upcoming)
		for _, ev := range upcoming {
			titles[ev.ID] = ev.Title
		}
	}

	interactions, err := r.Interactions.ListInteractions(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if r.Now != nil {
		now = r.Now().UTC()
	}
	var cutoff time.Time
	if r.Window > 0 {
		cutoff = now.Add(-r.Window)
	}

	counts := make(map[string]float64)
	for _, in := range interactions {
		if scope != nil {
			if _, ok := scope[in.EventID]; !ok {
				continue
			}
		}
		t, err := core.ParseTimestamp(in.Timestamp)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidData,
				fmt.Sprintf("parse interaction timestamps: %v", err))
		}
		if r.Window > 0 && t.Before(cutoff) {
			continue
		}
		if r.Weighted {
			if w, ok := in.Weight(); ok {
				counts[in.EventID] += w
			}
			continue
		}
		counts[in.EventID]++
	}

	out := make([]*core.Item, 0, len(counts))
	for eventID, score := range counts {
		it := core.NewItem(eventID)
		it.Title = titles[eventID]
		it.Score = score
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	sortRanked(out)
	return truncate(out, topK), nil
}

var _ Source = (*Hot)(nil)
