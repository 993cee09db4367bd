package core

// UserProfile 是用户（志愿者）画像。
//
// 设计要点：
//   - 标签字段只用于内容推荐：偏好/技能/地点拼成文本特征串后与事件比对
//   - 没有任何标签的用户内容相似度恒为 0，这是预期行为而非错误
//   - 协同过滤不读画像，只读交互日志
type UserProfile struct {
	UserID      string   `json:"userId"`
	Preferences []string `json:"preferences"`
	Skills      []string `json:"skills"`
	Locations   []string `json:"locations"`
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{UserID: userID}
}

// HasAttributes 判断画像是否携带任何标签。
func (p *UserProfile) HasAttributes() bool {
	if p == nil {
		return false
	}
	return len(p.Preferences) > 0 || len(p.Skills) > 0 || len(p.Locations) > 0
}
