package model

import "time"

// AttendanceSession 考勤场次表：对应 attendance_sessions（考勤模块写入，此处只读）
//
// TimetableSlotID 不设外键也不级联删除：时段被删除后场次成为孤儿记录。
type AttendanceSession struct {
	SessionID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	TimetableSlotID string    `gorm:"type:uuid;not null;index"                       json:"timetable_slot_id"`
	SessionDate     time.Time `gorm:"type:date;not null"                             json:"session_date"`
	BaseModel
}

// TableName 指定表名
func (AttendanceSession) TableName() string { return "attendance_sessions" }
