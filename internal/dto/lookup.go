package dto

// ── 分流 / 科目查询 DTO ──

// StreamListRequest 分流列表查询参数
type StreamListRequest struct {
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// StreamResponse 分流信息
type StreamResponse struct {
	ID           string `json:"id"`
	ClassID      string `json:"class_id"`
	ClassName    string `json:"class_name,omitempty"`
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
}

// SubjectListRequest 科目列表查询参数
//
// 指定 stream_id 时返回该分流专属科目以及其班级下的通用科目（stream_id 为空）。
type SubjectListRequest struct {
	ClassID   string `form:"class_id"   binding:"omitempty,uuid"`
	StreamID  string `form:"stream_id"  binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id"`
}

// SubjectResponse 科目信息
type SubjectResponse struct {
	ID           string  `json:"id"`
	ClassID      string  `json:"class_id"`
	StreamID     *string `json:"stream_id,omitempty"`
	Name         string  `json:"name"`
	IsCompulsory bool    `json:"is_compulsory"`
	TeacherID    *string `json:"teacher_id,omitempty"`
}
