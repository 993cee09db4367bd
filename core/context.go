package core

import "github.com/eventrec/eventrec/pkg/utils"

// RecommendContext 承载单次推荐请求的用户/参数信息，贯穿整个链路透传。
// 每个请求独立构建，请求之间不共享可变状态。
type RecommendContext struct {
	// RequestID 请求标识，用于日志串联
	RequestID string

	// UserID 目标用户；热门推荐不需要
	UserID string

	// User 已解析的用户画像；为空时由各召回源自行从 UserSource 获取
	User *UserProfile

	// Labels 用户级标签，可驱动过滤规则
	Labels map[string]utils.Label

	// Params 请求级参数（如自定义时间窗口、过滤规则变量）
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
