// Package matrix 把原始交互日志聚合为稀疏的 用户×事件 权重矩阵。
// 矩阵是派生数据：每次查询（或按刷新周期）从日志重建，从不落盘、从不增量维护。
package matrix

import (
	"fmt"
	"sort"
	"time"

	"github.com/eventrec/eventrec/core"
)

// Builder 构建交互矩阵。
//
// 处理顺序：
//  1. 整批解析时间戳（统一 UTC），任何一条失败都是 INVALID_DATA
//  2. 过滤：事件范围（Scope）、时间窗口（Window）
//  3. 类型映射权重，按 (user, event) 分组求和——重复交互累积而非覆盖
//  4. 透视为稀疏矩阵，缺失对补零（读取侧视角，存储仍稀疏）
//
// 过滤后为空返回 NO_DATA：新部署/近期无活动是常态，不是错误。
type Builder struct {
	// Window 只保留最近 Window 内的交互；0 表示不限
	Window time.Duration

	// Scope 限定事件范围（如 upcoming 事件集合）；nil 表示不限
	Scope map[string]struct{}

	// Now 供测试注入时钟；nil 时使用 time.Now
	Now func() time.Time
}

// Matrix 是聚合后的稀疏 用户×事件 矩阵。
// Users/Events 为排序后的键列表，保证迭代顺序确定。
// 聚合阶段是合并重复 (user, event) 交互的唯一事实来源，矩阵内不存在重复单元。
type Matrix struct {
	Users  []string
	Events []string
	rows   map[string]map[string]float64
}

// Build 从交互日志构建矩阵。
func (b *Builder) Build(interactions []*core.Interaction) (*Matrix, error) {
	now := time.Now().UTC()
	if b.Now != nil {
		now = b.Now().UTC()
	}
	var cutoff time.Time
	if b.Window > 0 {
		cutoff = now.Add(-b.Window)
	}

	// 时间戳整批先解析：半批成功的矩阵没有意义
	times := make([]time.Time, len(interactions))
	for i, in := range interactions {
		t, err := core.ParseTimestamp(in.Timestamp)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleMatrix, core.ErrorCodeInvalidData,
				fmt.Sprintf("parse interaction timestamps: %v", err))
		}
		times[i] = t
	}

	rows := make(map[string]map[string]float64)
	eventSet := make(map[string]struct{})
	for i, in := range interactions {
		if b.Scope != nil {
			if _, ok := b.Scope[in.EventID]; !ok {
				continue
			}
		}
		if b.Window > 0 && times[i].Before(cutoff) {
			continue
		}
		w, ok := in.Weight()
		if !ok {
			continue
		}
		if rows[in.UserID] == nil {
			rows[in.UserID] = make(map[string]float64)
		}
		rows[in.UserID][in.EventID] += w
		eventSet[in.EventID] = struct{}{}
	}

	if len(rows) == 0 {
		return nil, core.NewDomainError(core.ModuleMatrix, core.ErrorCodeNoData,
			"no interactions after filtering")
	}

	users := make([]string, 0, len(rows))
	for u := range rows {
		users = append(users, u)
	}
	sort.Strings(users)

	events := make([]string, 0, len(eventSet))
	for e := range eventSet {
		events = append(events, e)
	}
	sort.Strings(events)

	return &Matrix{Users: users, Events: events, rows: rows}, nil
}

// HasUser 判断用户是否在矩阵中（即窗口内有合规交互）。
func (m *Matrix) HasUser(userID string) bool {
	_, ok := m.rows[userID]
	return ok
}

// Row 返回用户的事件权重行；不存在时返回 nil。
func (m *Matrix) Row(userID string) map[string]float64 {
	return m.rows[userID]
}

// Weight 返回 (user, event) 单元的聚合权重，缺失补零。
func (m *Matrix) Weight(userID, eventID string) float64 {
	return m.rows[userID][eventID]
}
