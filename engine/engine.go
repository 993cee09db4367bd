// Package engine 把召回、融合与降级链编排成面向调用方的四个入口：
// 内容推荐、协同推荐、热门推荐、混合推荐。
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eventrec/eventrec/config"
	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/rank"
	"github.com/eventrec/eventrec/recall"
)

// Options 是引擎的装配参数。
type Options struct {
	Events       core.EventSource
	Users        core.UserSource
	Interactions core.InteractionSource

	// Config 为 nil 时使用默认配置
	Config *config.EngineConfig

	// Logger 为 nil 时使用 zap.NewNop()
	Logger *zap.Logger

	// HotStore/HotKey 预计算热门榜（可选）
	HotStore core.KeyValueStore
	HotKey   string
}

// Engine 是推荐引擎。无状态，单个实例可被并发使用。
//
// 混合推荐的降级链（保证"有用户就有结果"）：
//
//	协同命中    → 加权融合（内容路缺失按 0 分参与）
//	仅内容      → 内容排序
//	两路皆空    → 热门兜底
//
// 只有两类错误会抛给调用方：
//   - USER_NOT_FOUND：用户画像不存在，终止性错误
//   - UNAVAILABLE：数据源超时，调用方可重试
//
// 其余错误（NO_DATA / INVALID_DATA 等）在链内吸收并记录日志。
type Engine struct {
	events       core.EventSource
	users        core.UserSource
	interactions core.InteractionSource

	cfg    *config.EngineConfig
	logger *zap.Logger

	hotStore core.KeyValueStore
	hotKey   string
}

// New 创建一个推荐引擎。
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg.Normalize()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		events:       opts.Events,
		users:        opts.Users,
		interactions: opts.Interactions,
		cfg:          cfg,
		logger:       logger,
		hotStore:     opts.HotStore,
		hotKey:       opts.HotKey,
	}
}

// topK 归一结果数量：n <= 0 时退回配置值。
func (e *Engine) topK(n int) int {
	if n > 0 {
		return n
	}
	return e.cfg.TopK
}

func (e *Engine) contentRecall(n int) *recall.ContentRecall {
	return &recall.ContentRecall{
		Events: e.events,
		Users:  e.users,
		TopK:   e.topK(n),
	}
}

func (e *Engine) collaborativeRecall(n int) *recall.CollaborativeRecall {
	return &recall.CollaborativeRecall{
		Interactions:    e.interactions,
		Events:          e.events,
		Window:          e.cfg.CFWindow(),
		Neighbors:       e.cfg.Neighbors,
		TopK:            e.topK(n),
		ConfidenceFloor: e.cfg.ConfidenceFloor,
	}
}

func (e *Engine) hotRecall(n int) *recall.Hot {
	topK := e.topK(n)
	return &recall.Hot{
		Interactions: e.interactions,
		Events:       e.events,
		Store:        e.hotStore,
		Key:          e.hotKey,
		Window:       e.cfg.PopularityWindow(),
		Weighted:     e.cfg.PopularityWeighted,
		TopK:         topK,
	}
}

func (e *Engine) newContext(userID string) *core.RecommendContext {
	return &core.RecommendContext{
		RequestID: uuid.NewString(),
		UserID:    userID,
	}
}

// RecommendContent 纯内容推荐：用户标签 vs 事件标签的 TF-IDF 余弦相似度。
// n 是结果数量上限，<= 0 时使用配置的 TopK。
func (e *Engine) RecommendContent(ctx context.Context, userID string, n int) ([]*core.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout())
	defer cancel()

	items, err := e.contentRecall(n).Recall(ctx, e.newContext(userID))
	return items, e.translateTimeout(err)
}

// RecommendCollaborative 纯协同推荐：近邻用户的交互信号加权累积。
func (e *Engine) RecommendCollaborative(ctx context.Context, userID string, n int) ([]*core.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout())
	defer cancel()

	items, err := e.collaborativeRecall(n).Recall(ctx, e.newContext(userID))
	return items, e.translateTimeout(err)
}

// RecommendPopularity 热门推荐：统计窗口内交互量最高的 n 个事件。
// 与用户无关，可直接用于匿名请求。
func (e *Engine) RecommendPopularity(ctx context.Context, n int) ([]*core.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout())
	defer cancel()

	items, err := e.hotRecall(n).Recall(ctx, nil)
	return items, e.translateTimeout(err)
}

// RecommendHybrid 混合推荐入口，执行完整的降级链。
//
// 两路召回并发执行，互不取消：一路失败不影响另一路的结果。
func (e *Engine) RecommendHybrid(ctx context.Context, userID string, n int) ([]*core.Item, error) {
	rctx := e.newContext(userID)
	logger := e.logger.With(
		zap.String("request_id", rctx.RequestID),
		zap.String("user_id", userID),
	)

	user, err := e.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rctx.User = user

	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout())
	defer cancel()

	var (
		contentItems, cfItems []*core.Item
		contentErr, cfErr     error
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		contentItems, contentErr = e.contentRecall(n).Recall(fetchCtx, rctx)
		return nil
	})
	g.Go(func() error {
		cfItems, cfErr = e.collaborativeRecall(n).Recall(fetchCtx, rctx)
		return nil
	})
	_ = g.Wait()

	if cfErr != nil {
		e.logBranch(logger, "cf", cfErr)
	}
	if contentErr != nil {
		e.logBranch(logger, "content", contentErr)
	}

	if cfErr != nil {
		cfItems = nil
	}
	if contentErr != nil {
		contentItems = nil
	}
	hasCF := len(cfItems) > 0
	hasContent := len(contentItems) > 0

	switch {
	case hasCF:
		// 内容路为空时照常融合：缺失的那一路按 0 分参与，协同信号不丢弃。
		fuser := &rank.HybridFuser{
			CFWeight:      e.cfg.CFWeight,
			ContentWeight: e.cfg.ContentWeight,
			TopK:          e.topK(n),
		}
		logger.Debug("hybrid fused", zap.Int("cf", len(cfItems)), zap.Int("content", len(contentItems)))
		return fuser.Fuse(cfItems, contentItems), nil

	case hasContent:
		logger.Debug("hybrid fell back to content", zap.Int("content", len(contentItems)))
		return contentItems, nil

	default:
		hotItems, hotErr := e.hotRecall(n).Recall(fetchCtx, rctx)
		if hotErr != nil {
			e.logBranch(logger, "hot", hotErr)
			if isTimeout(hotErr) || ctx.Err() != nil {
				return nil, e.translateTimeout(hotErr)
			}
			return []*core.Item{}, nil
		}
		logger.Debug("hybrid fell back to popularity", zap.Int("hot", len(hotItems)))
		return hotItems, nil
	}
}

// fetchUser 在超时约束下解析用户画像。
// 用户不存在是终止性错误；超时翻译为 UNAVAILABLE，调用方可重试。
func (e *Engine) fetchUser(ctx context.Context, userID string) (*core.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout())
	defer cancel()

	type result struct {
		user *core.UserProfile
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		u, err := e.users.GetUser(ctx, userID)
		ch <- result{user: u, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnavailable,
			fmt.Sprintf("user profile fetch: %v", ctx.Err()))
	case r := <-ch:
		if r.err != nil {
			return nil, e.translateTimeout(r.err)
		}
		return r.user, nil
	}
}

// logBranch 记录链内被吸收的分支错误。INVALID_DATA 属于数据质量问题，提级为 Warn。
func (e *Engine) logBranch(logger *zap.Logger, branch string, err error) {
	fields := []zap.Field{zap.String("branch", branch), zap.Error(err)}
	if core.IsInvalidData(err) {
		logger.Warn("recall branch rejected data", fields...)
		return
	}
	logger.Debug("recall branch unavailable", fields...)
}

func (e *Engine) translateTimeout(err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnavailable,
			fmt.Sprintf("data source fetch: %v", err))
	}
	return err
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
