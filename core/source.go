package core

import "context"

// 快照接口：推荐核心消费的三类只读数据。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store / feature）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 快照只读：引擎不写回任何数据，单次请求内不要求快照一致性
//
// 实现：
//   - store.SnapshotSource（内存/Redis 上的 JSON 快照）
//   - feature.FeastUserSource（Feast 在线特征作为用户画像）

// EventSource 提供事件快照。上游负责全量返回，upcoming 过滤发生在引擎侧打分之前。
type EventSource interface {
	// ListEvents 返回全部事件（含历史状态）
	ListEvents(ctx context.Context) ([]*Event, error)
}

// UserSource 提供用户画像快照。
type UserSource interface {
	// GetUser 返回用户画像；用户不存在时返回 USER_NOT_FOUND 领域错误
	GetUser(ctx context.Context, userID string) (*UserProfile, error)
}

// InteractionSource 提供交互日志快照。
// 日志只追加、不可变；时间窗口等过滤由读取侧完成。
type InteractionSource interface {
	// ListInteractions 返回交互日志
	ListInteractions(ctx context.Context) ([]*Interaction, error)
}
