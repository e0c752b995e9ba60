package enums

// Visibility 表示博客的可见性状态。
// - 状态机: active <-> removed，仅管理员可以触发迁移。
// - removed 状态的博客对公开读路径不可见，但作者本人仍可在"我的博客"中看到。
type Visibility int

const (
	// VisibilityActive 正常可见（初始状态）
	VisibilityActive Visibility = 0
	// VisibilityRemoved 已被管理员下架（可由管理员恢复）
	VisibilityRemoved Visibility = 1
)

func (v Visibility) String() string {
	switch v {
	case VisibilityActive:
		return "active"
	case VisibilityRemoved:
		return "removed"
	default:
		return "unknown"
	}
}
