package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Slot       TimetableSlotRepository
	Stream     StreamRepository
	Subject    SubjectRepository
	Attendance AttendanceSessionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Slot:       NewTimetableSlotRepo(db),
		Stream:     NewStreamRepo(db),
		Subject:    NewSubjectRepo(db),
		Attendance: NewAttendanceSessionRepo(db),
	}
}

// validID 主键均为 uuid 列，格式非法的 ID 按记录不存在处理
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
