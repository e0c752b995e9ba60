package enums

// ReportReason 举报原因的封闭枚举。
// - 使用字符串类型便于直接透出给前端和落库。
type ReportReason string

const (
	ReasonSpam           ReportReason = "spam"
	ReasonAbuse          ReportReason = "abuse"
	ReasonHate           ReportReason = "hate"
	ReasonPlagiarism     ReportReason = "plagiarism"
	ReasonMisinformation ReportReason = "misinformation"
	ReasonOther          ReportReason = "other"
)

// IsValid 校验举报原因是否在封闭枚举内。
func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonAbuse, ReasonHate, ReasonPlagiarism, ReasonMisinformation, ReasonOther:
		return true
	}
	return false
}

// ReportStatus 举报处理状态。
// - 状态迁移是单向的: pending -> reviewed，不存在"撤销审核"。
type ReportStatus int

const (
	// ReportPending 待处理（初始状态）
	ReportPending ReportStatus = 0
	// ReportReviewed 已由管理员处理
	ReportReviewed ReportStatus = 1
)

func (s ReportStatus) String() string {
	switch s {
	case ReportPending:
		return "pending"
	case ReportReviewed:
		return "reviewed"
	default:
		return "unknown"
	}
}
