package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// AdminVO 定义了管理员信息的响应数据结构
type AdminVO struct {
	ID          uint64            `json:"id"`          // 管理员ID
	Username    string            `json:"username"`    // 用户名
	Email       string            `json:"email"`       // 邮箱
	Permissions enums.Permissions `json:"permissions"` // 权限列表
}

// AdminAuthResultVO 定义了管理员登录成功后的响应数据结构
type AdminAuthResultVO struct {
	Token string   `json:"token"` // JWT 令牌
	Admin *AdminVO `json:"admin"` // 管理员信息
}

// ReportVO 定义了举报记录的响应数据结构
type ReportVO struct {
	ID         uint64     `json:"id"`                    // 举报ID
	BlogID     uint64     `json:"blog_id"`               // 被举报博客ID
	ReporterID string     `json:"reporter_id"`           // 举报人ID
	Reason     string     `json:"reason"`                // 举报理由
	Message    string     `json:"message,omitempty"`     // 补充说明
	Status     string     `json:"status"`                // 状态: pending / reviewed
	ReviewedBy *uint64    `json:"reviewed_by,omitempty"` // 复审管理员ID
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"` // 复审时间
	CreatedAt  time.Time  `json:"created_at"`            // 举报时间
}

// ReportListVO 定义了举报列表的分页响应结构
type ReportListVO struct {
	Reports []*ReportVO `json:"reports"` // 当前页的举报列表
	Total   int64       `json:"total"`   // 符合条件的总记录数
}

// ActionLogVO 定义了管理操作日志的响应数据结构
type ActionLogVO struct {
	ID         uint64         `json:"id"`             // 日志ID
	AdminID    uint64         `json:"admin_id"`       // 操作管理员ID
	Action     string         `json:"action"`         // 操作类型
	TargetType string         `json:"target_type"`    // 目标类型: Blog / User / Report
	TargetID   string         `json:"target_id"`      // 目标标识
	Meta       map[string]any `json:"meta,omitempty"` // 附加信息
	CreatedAt  time.Time      `json:"created_at"`     // 操作时间
}

// ActionLogListVO 定义了操作日志的分页响应结构
type ActionLogListVO struct {
	Logs  []*ActionLogVO `json:"logs"`  // 当前页的日志列表
	Total int64          `json:"total"` // 日志总数
}

// AdminStatsVO 定义了管理端统计面板的响应数据结构
type AdminStatsVO struct {
	TotalBlogs     int64 `json:"total_blogs"`     // 博客总数
	ActiveBlogs    int64 `json:"active_blogs"`    // 公开博客数
	RemovedBlogs   int64 `json:"removed_blogs"`   // 已下架博客数
	PendingReports int64 `json:"pending_reports"` // 待复审举报数
}

// MapAdminToVO 将管理员实体转换为 VO。
func MapAdminToVO(admin *entities.Admin) *AdminVO {
	if admin == nil {
		return nil
	}
	perms := admin.Permissions
	if perms == nil {
		perms = enums.Permissions{}
	}
	return &AdminVO{
		ID:          admin.ID,
		Username:    admin.Username,
		Email:       admin.Email,
		Permissions: perms,
	}
}

// MapReportToVO 将举报实体转换为 VO。
func MapReportToVO(report *entities.Report) *ReportVO {
	if report == nil {
		return nil
	}
	return &ReportVO{
		ID:         report.ID,
		BlogID:     report.BlogID,
		ReporterID: report.ReporterID,
		Reason:     string(report.Reason),
		Message:    report.Message,
		Status:     report.Status.String(),
		ReviewedBy: report.ReviewedBy,
		ReviewedAt: report.ReviewedAt,
		CreatedAt:  report.CreatedAt,
	}
}

// MapReportsToVOs 将举报实体列表转换为 VO 列表。
func MapReportsToVOs(reports []*entities.Report) []*ReportVO {
	if len(reports) == 0 {
		return []*ReportVO{}
	}
	vos := make([]*ReportVO, 0, len(reports))
	for _, r := range reports {
		vos = append(vos, MapReportToVO(r))
	}
	return vos
}

// MapActionLogToVO 将操作日志实体转换为 VO。
func MapActionLogToVO(log *entities.AdminActionLog) *ActionLogVO {
	if log == nil {
		return nil
	}
	return &ActionLogVO{
		ID:         log.ID,
		AdminID:    log.AdminID,
		Action:     string(log.Action),
		TargetType: string(log.TargetType),
		TargetID:   log.TargetID,
		Meta:       log.Meta,
		CreatedAt:  log.CreatedAt,
	}
}

// MapActionLogsToVOs 将操作日志实体列表转换为 VO 列表。
func MapActionLogsToVOs(logs []*entities.AdminActionLog) []*ActionLogVO {
	if len(logs) == 0 {
		return []*ActionLogVO{}
	}
	vos := make([]*ActionLogVO, 0, len(logs))
	for _, l := range logs {
		vos = append(vos, MapActionLogToVO(l))
	}
	return vos
}
