package core

// 事件生命周期状态。发布后的事件除状态流转外不可变。
const (
	StatusUpcoming = "upcoming" // 报名中/未开始，唯一可被推荐的状态
)

// Event 是可被推荐的实体（志愿活动/事件）。
//
// 标签字段（Preferences / Skills / Locations）是内容推荐的唯一特征来源：
// 它们会被拼接成一个扁平的文本特征串，再进入 TF-IDF 向量空间。
// 字段缺失等价于空列表，不会产生错误。
type Event struct {
	ID          string   `json:"eventId"`
	Title       string   `json:"title"`
	Preferences []string `json:"preferences"`
	Skills      []string `json:"skills"`
	Locations   []string `json:"locations"`
	Status      string   `json:"status"`
}

// IsUpcoming 判断事件是否处于可推荐状态。
func (e *Event) IsUpcoming() bool {
	return e != nil && e.Status == StatusUpcoming
}

// FilterUpcoming 返回所有处于 upcoming 状态的事件。
// 约束：内容/热门推荐只允许在打分前过滤候选集，过滤发生在这里，而不是打分之后。
func FilterUpcoming(events []*Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		if ev.IsUpcoming() {
			out = append(out, ev)
		}
	}
	return out
}

// PartitionByStatus 将事件划分为 upcoming 与历史两部分。
func PartitionByStatus(events []*Event) (upcoming, historical []*Event) {
	for _, ev := range events {
		if ev.IsUpcoming() {
			upcoming = append(upcoming, ev)
		} else if ev != nil {
			historical = append(historical, ev)
		}
	}
	return upcoming, historical
}

// EventIDSet 返回事件 ID 集合，常用于限定交互矩阵的事件范围。
func EventIDSet(events []*Event) map[string]struct{} {
	set := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev != nil {
			set[ev.ID] = struct{}{}
		}
	}
	return set
}
