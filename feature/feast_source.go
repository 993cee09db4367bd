package feature

import (
	"context"
	"fmt"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/eventrec/eventrec/core"
)

// FeastUserSource 是基于 Feast Feature Store 的用户画像快照实现。
//
// 画像标签（偏好/技能/地点）作为在线特征存放在 Feast 中，
// 每个特征值是分号连接的标签列表字符串，读取后拆分为标签切片。
//
// 设计原则（与存储接口一致）：
//   - 领域层：core.UserSource 接口保持不变
//   - 基础设施层：FeastUserSource 实现接口，可与 store.SnapshotSource 互换
type FeastUserSource struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// EntityKey 实体键名，默认 "user_id"
	EntityKey string

	// Features 三个画像特征的完整名称，按 偏好/技能/地点 顺序。
	// 默认 volunteer_profile:preferences / :skills / :locations
	Features [3]string
}

// NewFeastUserSource 连接 Feast Feature Server 并构建用户画像源。
func NewFeastUserSource(host string, port int, project string) (*FeastUserSource, error) {
	if port == 0 {
		port = 6565 // Feast gRPC 默认端口
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast %s:%d: %w", host, port, err)
	}
	return &FeastUserSource{
		client:    client,
		Project:   project,
		EntityKey: "user_id",
		Features: [3]string{
			"volunteer_profile:preferences",
			"volunteer_profile:skills",
			"volunteer_profile:locations",
		},
	}, nil
}

// GetUser 实现 core.UserSource：从在线特征拼出用户画像。
// 三个特征全部缺失视为用户不存在，返回 USER_NOT_FOUND。
func (s *FeastUserSource) GetUser(ctx context.Context, userID string) (*core.UserProfile, error) {
	req := &feastsdk.OnlineFeaturesRequest{
		Features: s.Features[:],
		Entities: []feastsdk.Row{
			{s.entityKey(): feastsdk.StrVal(userID)},
		},
		Project: s.Project,
	}

	resp, err := s.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable,
			fmt.Sprintf("feast get online features: %v", err))
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, userNotFound(userID)
	}
	row := rows[0]

	profile := core.NewUserProfile(userID)
	found := false
	for i, feat := range s.Features {
		tags := splitTags(valueToString(row[feat]))
		if len(tags) == 0 {
			continue
		}
		found = true
		switch i {
		case 0:
			profile.Preferences = tags
		case 1:
			profile.Skills = tags
		case 2:
			profile.Locations = tags
		}
	}
	if !found {
		return nil, userNotFound(userID)
	}
	return profile, nil
}

// Close 释放客户端连接。
func (s *FeastUserSource) Close() error {
	s.client = nil
	return nil
}

func (s *FeastUserSource) entityKey() string {
	if s.EntityKey == "" {
		return "user_id"
	}
	return s.EntityKey
}

func userNotFound(userID string) error {
	return core.NewDomainError(core.ModuleFeature, core.ErrorCodeUserNotFound,
		fmt.Sprintf("user %s not found", userID))
}

// valueToString 从 Feast 值类型提取字符串。
func valueToString(val *feasttypes.Value) string {
	if val == nil {
		return ""
	}
	if s := val.GetStringVal(); s != "" {
		return s
	}
	return ""
}

// splitTags 将分号连接的标签串拆分为标签切片。
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ core.UserSource = (*FeastUserSource)(nil)
