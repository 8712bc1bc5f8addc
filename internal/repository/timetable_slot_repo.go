package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/timegrid"
)

// SlotFilter 批量删除条件：各字段为合取关系，nil 表示不限。
// 时间按补零后相等匹配，"8:00" 与 "08:00" 视为同一时间。
type SlotFilter struct {
	StreamID  *string
	DayOfWeek *int
	StartTime *string
	EndTime   *string
}

// IsEmpty 条件全空，即匹配全部时段
func (f SlotFilter) IsEmpty() bool {
	return f.StreamID == nil && f.DayOfWeek == nil && f.StartTime == nil && f.EndTime == nil
}

// Matches 判断单个时段是否满足条件，与 apply 生成的 SQL 条件语义一致
func (f SlotFilter) Matches(slot *model.TimetableSlot) bool {
	if f.StreamID != nil && slot.StreamID != *f.StreamID {
		return false
	}
	if f.DayOfWeek != nil && slot.DayOfWeek != *f.DayOfWeek {
		return false
	}
	if f.StartTime != nil && timegrid.Compare(slot.StartTime, *f.StartTime) != 0 {
		return false
	}
	if f.EndTime != nil && timegrid.Compare(slot.EndTime, *f.EndTime) != 0 {
		return false
	}
	return true
}

func (f SlotFilter) apply(db *gorm.DB) *gorm.DB {
	if f.StreamID != nil {
		db = db.Where("stream_id = ?", *f.StreamID)
	}
	if f.DayOfWeek != nil {
		db = db.Where("day_of_week = ?", *f.DayOfWeek)
	}
	if f.StartTime != nil {
		db = db.Where("start_time IN ?", timegrid.Spellings(*f.StartTime))
	}
	if f.EndTime != nil {
		db = db.Where("end_time IN ?", timegrid.Spellings(*f.EndTime))
	}
	return db
}

// TimetableSlotRepository 课表时段数据访问接口
type TimetableSlotRepository interface {
	Create(ctx context.Context, slot *model.TimetableSlot) error
	GetByID(ctx context.Context, id string) (*model.TimetableSlot, error)
	ListByStream(ctx context.Context, streamID string) ([]model.TimetableSlot, error)
	ListBySubjects(ctx context.Context, subjectIDs []string) ([]model.TimetableSlot, error)
	UpdateSubject(ctx context.Context, id string, subjectID *string, updatedBy string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteWhere(ctx context.Context, filter SlotFilter) (int64, error)
}

type timetableSlotRepo struct {
	db *gorm.DB
}

// NewTimetableSlotRepo 创建 TimetableSlotRepository 实例
func NewTimetableSlotRepo(db *gorm.DB) TimetableSlotRepository {
	return &timetableSlotRepo{db: db}
}

func (r *timetableSlotRepo) Create(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timetableSlotRepo) GetByID(ctx context.Context, id string) (*model.TimetableSlot, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var slot model.TimetableSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListByStream 不保证顺序，排序由视图层负责
func (r *timetableSlotRepo) ListByStream(ctx context.Context, streamID string) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	if !validID(streamID) {
		return slots, nil
	}
	err := r.db.WithContext(ctx).
		Where("stream_id = ?", streamID).
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) ListBySubjects(ctx context.Context, subjectIDs []string) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	if len(subjectIDs) == 0 {
		return slots, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Stream").
		Where("subject_id IN ?", subjectIDs).
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) UpdateSubject(ctx context.Context, id string, subjectID *string, updatedBy string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.TimetableSlot{}).
		Where("slot_id = ?", id).
		Updates(map[string]interface{}{
			"subject_id": subjectID,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		})
	return result.RowsAffected, result.Error
}

func (r *timetableSlotRepo) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.TimetableSlot{})
	return result.RowsAffected, result.Error
}

// DeleteWhere 条件为空时删除全表；gorm 默认拦截无条件删除，这里显式放开
func (r *timetableSlotRepo) DeleteWhere(ctx context.Context, filter SlotFilter) (int64, error) {
	if filter.StreamID != nil && !validID(*filter.StreamID) {
		return 0, nil
	}
	db := r.db.WithContext(ctx)
	if filter.IsEmpty() {
		db = db.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	result := filter.apply(db).Delete(&model.TimetableSlot{})
	return result.RowsAffected, result.Error
}
