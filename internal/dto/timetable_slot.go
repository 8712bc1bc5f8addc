package dto

import pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"

// ── 课表时段模块 DTO ──

// BulkCreateSlotsRequest 批量创建时段请求（单个时段也走本接口，基数为 1）
type BulkCreateSlotsRequest struct {
	StreamIDs Selection[string] `json:"stream_ids"`
	Days      Selection[int]    `json:"days"`
	StartTime string            `json:"start_time" binding:"required,hhmm"` // "08:00"
	EndTime   string            `json:"end_time"   binding:"required,hhmm"` // "08:40"
	Type      string            `json:"type"       binding:"required,oneof=lesson break"`
	SubjectID *string           `json:"subject_id" binding:"omitempty,uuid"`
}

// BulkCreateSlotsResponse 批量创建结果；部分失败时同时携带失败的 (分流, 星期) 组合
type BulkCreateSlotsResponse struct {
	CreatedCount int                    `json:"created_count"`
	FailedCount  int                    `json:"failed_count,omitempty"`
	Failures     []pkgerrors.FailedPair `json:"failures,omitempty"`
}

// BulkDeleteSlotsRequest 按条件批量删除请求，所有条件均可选
//
// 条件全空表示删除全部时段，此时 Confirm 必须与服务端配置的确认短语完全一致。
type BulkDeleteSlotsRequest struct {
	StreamID  *string `json:"stream_id"   binding:"omitempty,uuid"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=6"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Confirm   string  `json:"confirm"`
}

// BulkDeleteSlotsResponse 批量删除结果
type BulkDeleteSlotsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ReassignSubjectRequest 改课请求，subject_id 为 null 表示置为未排课
type ReassignSubjectRequest struct {
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
}

// SlotView 时段渲染视图（管理端网格、教师端、学生端共用）
type SlotView struct {
	ID             string  `json:"id"`
	StreamID       string  `json:"stream_id"`
	StreamName     string  `json:"stream_name,omitempty"`
	SubjectID      *string `json:"subject_id"`
	SubjectName    *string `json:"subject_name"`
	SubjectMissing bool    `json:"subject_missing,omitempty"` // subject_id 已无法解析
	DayOfWeek      int     `json:"day_of_week"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Type           string  `json:"type"`
}

// WeekViewResponse 周视图：days 固定包含 1-6 六个键，无时段的日子为空数组
type WeekViewResponse struct {
	StreamID   string             `json:"stream_id,omitempty"`
	StreamName string             `json:"stream_name,omitempty"`
	TeacherID  string             `json:"teacher_id,omitempty"`
	Days       map[int][]SlotView `json:"days"`
}
