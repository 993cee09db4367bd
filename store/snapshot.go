package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eventrec/eventrec/core"
)

// SnapshotSource 在任意 core.Store 之上实现三类快照数据源
// （core.EventSource / core.UserSource / core.InteractionSource）。
//
// key 约定（prefix 默认 "rec"）：
//
//	{prefix}:events            全部事件的 JSON 数组
//	{prefix}:user:{userID}     单个用户画像的 JSON
//	{prefix}:interactions      交互日志的 JSON 数组
//
// 快照由离线任务整体写入、整体替换，读取侧不做增量合并。
type SnapshotSource struct {
	Store  core.Store
	Prefix string
}

// NewSnapshotSource 创建一个快照数据源。
func NewSnapshotSource(s core.Store, prefix string) *SnapshotSource {
	if prefix == "" {
		prefix = "rec"
	}
	return &SnapshotSource{Store: s, Prefix: prefix}
}

func (s *SnapshotSource) eventsKey() string       { return s.Prefix + ":events" }
func (s *SnapshotSource) interactionsKey() string { return s.Prefix + ":interactions" }
func (s *SnapshotSource) userKey(userID string) string {
	return s.Prefix + ":user:" + userID
}

// ListEvents 读取事件快照；快照缺失视为空。
func (s *SnapshotSource) ListEvents(ctx context.Context) ([]*core.Event, error) {
	data, err := s.Store.Get(ctx, s.eventsKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []*core.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidData,
			fmt.Sprintf("decode events snapshot: %v", err))
	}
	return events, nil
}

// GetUser 读取用户画像；key 缺失返回 USER_NOT_FOUND。
func (s *SnapshotSource) GetUser(ctx context.Context, userID string) (*core.UserProfile, error) {
	data, err := s.Store.Get(ctx, s.userKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUserNotFound,
				fmt.Sprintf("user %s not found", userID))
		}
		return nil, err
	}
	var profile core.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidData,
			fmt.Sprintf("decode user snapshot: %v", err))
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return &profile, nil
}

// ListInteractions 读取交互日志快照；快照缺失视为空。
func (s *SnapshotSource) ListInteractions(ctx context.Context) ([]*core.Interaction, error) {
	data, err := s.Store.Get(ctx, s.interactionsKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var interactions []*core.Interaction
	if err := json.Unmarshal(data, &interactions); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidData,
			fmt.Sprintf("decode interactions snapshot: %v", err))
	}
	return interactions, nil
}

// SeedSnapshot 整体写入一份快照，常用于测试和离线导入。
func SeedSnapshot(
	ctx context.Context,
	s core.Store,
	prefix string,
	events []*core.Event,
	users []*core.UserProfile,
	interactions []*core.Interaction,
) error {
	src := NewSnapshotSource(s, prefix)

	kvs := make(map[string][]byte, len(users)+2)
	if events != nil {
		data, err := json.Marshal(events)
		if err != nil {
			return err
		}
		kvs[src.eventsKey()] = data
	}
	if interactions != nil {
		data, err := json.Marshal(interactions)
		if err != nil {
			return err
		}
		kvs[src.interactionsKey()] = data
	}
	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		kvs[src.userKey(u.UserID)] = data
	}
	return s.BatchSet(ctx, kvs)
}

var _ core.EventSource = (*SnapshotSource)(nil)
var _ core.UserSource = (*SnapshotSource)(nil)
var _ core.InteractionSource = (*SnapshotSource)(nil)
