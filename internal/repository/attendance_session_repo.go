package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/internal/model"
)

// AttendanceSessionRepository 考勤场次只读接口
// timetable_slot_id 仅作为不透明外键读取，本模块不负责级联
type AttendanceSessionRepository interface {
	CountBySlot(ctx context.Context, slotID string) (int64, error)
}

type attendanceSessionRepo struct {
	db *gorm.DB
}

// NewAttendanceSessionRepo 创建 AttendanceSessionRepository 实例
func NewAttendanceSessionRepo(db *gorm.DB) AttendanceSessionRepository {
	return &attendanceSessionRepo{db: db}
}

func (r *attendanceSessionRepo) CountBySlot(ctx context.Context, slotID string) (int64, error) {
	var count int64
	if !validID(slotID) {
		return 0, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceSession{}).
		Where("timetable_slot_id = ?", slotID).
		Count(&count).Error
	return count, err
}
