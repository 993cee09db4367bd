// Package feature 提供内容推荐的特征构建：
// 把用户/事件的标签字段拼成扁平文本特征串，并在其上拟合 TF-IDF 向量空间。
package feature

import (
	"strings"

	"github.com/eventrec/eventrec/core"
)

// BuildText 把若干标签字段拼接为一个空白分隔的文本特征串。
// 分号连接的列表项（如 "teaching;mentoring"）会展开为空格分隔的词符，
// 因为下游向量化按空白切词。字段缺失等价于空串，纯函数、不会失败。
func BuildText(fields ...[]string) string {
	var b strings.Builder
	for _, field := range fields {
		for _, entry := range field {
			for _, token := range strings.Split(entry, ";") {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(token)
			}
		}
	}
	return b.String()
}

// EventText 返回事件的文本特征串（偏好 + 所需技能 + 地点）。
func EventText(ev *core.Event) string {
	if ev == nil {
		return ""
	}
	return BuildText(ev.Preferences, ev.Skills, ev.Locations)
}

// UserText 返回用户画像的文本特征串。
func UserText(u *core.UserProfile) string {
	if u == nil {
		return ""
	}
	return BuildText(u.Preferences, u.Skills, u.Locations)
}
