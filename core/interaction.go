package core

import (
	"fmt"
	"time"
)

// InteractionType 是用户与事件之间的交互类型。
type InteractionType string

const (
	InteractionView        InteractionType = "view"
	InteractionReview      InteractionType = "review"
	InteractionWatchlisted InteractionType = "watchlisted"
	InteractionEnquiry     InteractionType = "enquiry"
	InteractionApply       InteractionType = "apply"
)

// InteractionWeights 是各交互类型的固定权重。
// 同一 (user, event) 的多次交互按权重求和累积，不覆盖、不取均值。
var InteractionWeights = map[InteractionType]float64{
	InteractionView:        0.5,
	InteractionReview:      2,
	InteractionWatchlisted: 3,
	InteractionEnquiry:     4,
	InteractionApply:       5,
}

// Interaction 是一条只追加、不可变的交互记录。
// Timestamp 保留采集时的原始字符串，解析延迟到读取侧（矩阵构建/热门统计），
// 因为上游来源（文档库导出、CSV）混用带时区与不带时区两种格式。
type Interaction struct {
	UserID    string          `json:"userId"`
	EventID   string          `json:"eventId"`
	Type      InteractionType `json:"type"`
	Timestamp string          `json:"timestamp"`
}

// Weight 返回交互类型对应的权重；未知类型返回 (0, false)。
func (i *Interaction) Weight() (float64, bool) {
	w, ok := InteractionWeights[i.Type]
	return w, ok
}

// 允许的时间戳格式，统一解析为 UTC 后再比较。
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp 解析交互时间戳。
// 带时区的格式转换为 UTC；不带时区的格式按 UTC 解释，
// 保证窗口比较在单一时区约定下进行。
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}
