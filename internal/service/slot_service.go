package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/repository"
	"github.com/Muhol/Olabs-sub000/internal/timegrid"
	pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"
)

// ── 课表时段模块业务错误 ──

var (
	ErrSlotNotFound      = pkgerrors.NotFound("课表时段不存在")
	ErrStreamNotFound    = pkgerrors.NotFound("分流不存在")
	ErrSubjectNotFound   = pkgerrors.NotFound("科目不存在")
	ErrInvalidDay        = pkgerrors.Validation("星期必须在 1-6 之间")
	ErrInvalidSlotType   = pkgerrors.Validation("时段类型必须为 lesson 或 break")
	ErrSlotFieldRequired = pkgerrors.Validation("分流、开始时间与结束时间不能为空")
)

// CreateSlotParams 创建单个时段的参数
type CreateSlotParams struct {
	StreamID  string
	SubjectID *string
	DayOfWeek int
	StartTime string
	EndTime   string
	Type      model.SlotType
}

// SlotService 时段存储：时段记录的唯一拥有者
//
// 设计说明：
//   - 仅做结构校验（星期、类型、分流存在），不检查重叠，不检查开始/结束先后
//   - 每个操作只落一条 SQL，单条记录级别原子
//   - 不提供"删除后重建"式的修改：改科目必须走 UpdateSubject 保持 slot_id 不变
type SlotService interface {
	Create(ctx context.Context, p CreateSlotParams, callerID string) (*model.TimetableSlot, error)
	GetByID(ctx context.Context, id string) (*model.TimetableSlot, error)
	ListByStream(ctx context.Context, streamID string) ([]model.TimetableSlot, error)
	UpdateSubject(ctx context.Context, id string, subjectID *string, callerID string) (*model.TimetableSlot, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteWhere 条件为空时删除全部时段；确认由调用方负责
	DeleteWhere(ctx context.Context, filter repository.SlotFilter) (int64, error)
}

type slotService struct {
	repo   *repository.Repository
	cache  WeekViewCache
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(repo *repository.Repository, cache WeekViewCache, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *slotService) Create(ctx context.Context, p CreateSlotParams, callerID string) (*model.TimetableSlot, error) {
	if !timegrid.ValidDay(p.DayOfWeek) {
		return nil, ErrInvalidDay
	}
	if !p.Type.Valid() {
		return nil, ErrInvalidSlotType
	}
	if strings.TrimSpace(p.StreamID) == "" || strings.TrimSpace(p.StartTime) == "" || strings.TrimSpace(p.EndTime) == "" {
		return nil, ErrSlotFieldRequired
	}

	if _, err := s.repo.Stream.GetByID(ctx, p.StreamID); err != nil {
		if isRecordNotFound(err) {
			return nil, ErrStreamNotFound
		}
		s.logger.Error("查询分流失败", zap.String("stream_id", p.StreamID), zap.Error(err))
		return nil, err
	}

	slot := &model.TimetableSlot{
		StreamID:  p.StreamID,
		SubjectID: p.SubjectID,
		DayOfWeek: p.DayOfWeek,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Type:      p.Type,
	}
	slot.CreatedBy = &callerID
	slot.UpdatedBy = &callerID

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.logger.Error("创建时段失败",
			zap.String("stream_id", p.StreamID),
			zap.Int("day_of_week", p.DayOfWeek),
			zap.Error(err),
		)
		return nil, err
	}

	invalidateStream(ctx, s.cache, slot.StreamID)
	return slot, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *slotService) GetByID(ctx context.Context, id string) (*model.TimetableSlot, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询时段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return slot, nil
}

// ────────────────────── ListByStream ──────────────────────

func (s *slotService) ListByStream(ctx context.Context, streamID string) ([]model.TimetableSlot, error) {
	slots, err := s.repo.Slot.ListByStream(ctx, streamID)
	if err != nil {
		s.logger.Error("列出分流时段失败", zap.String("stream_id", streamID), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// ────────────────────── UpdateSubject ──────────────────────

// UpdateSubject 原地修改时段科目；不校验科目与分流/班级是否匹配
func (s *slotService) UpdateSubject(ctx context.Context, id string, subjectID *string, callerID string) (*model.TimetableSlot, error) {
	affected, err := s.repo.Slot.UpdateSubject(ctx, id, subjectID, callerID)
	if err != nil {
		s.logger.Error("更新时段科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSlotNotFound
	}

	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slot.StreamID)
	return slot, nil
}

// ────────────────────── DeleteByID ──────────────────────

// DeleteByID 删除单个时段。引用该时段的考勤场次会成为孤儿记录，这里只记录告警不做阻拦
func (s *slotService) DeleteByID(ctx context.Context, id string) error {
	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if n, err := s.repo.Attendance.CountBySlot(ctx, id); err != nil {
		s.logger.Warn("统计时段考勤场次失败", zap.String("id", id), zap.Error(err))
	} else if n > 0 {
		s.logger.Warn("删除时段将产生孤儿考勤场次",
			zap.String("id", id),
			zap.Int64("attendance_sessions", n),
		)
	}

	affected, err := s.repo.Slot.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除时段失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	s.cache.Invalidate(ctx, slot.StreamID)
	return nil
}

// ────────────────────── DeleteWhere ──────────────────────

func (s *slotService) DeleteWhere(ctx context.Context, filter repository.SlotFilter) (int64, error) {
	deleted, err := s.repo.Slot.DeleteWhere(ctx, filter)
	if err != nil {
		s.logger.Error("按条件删除时段失败", zap.Error(err))
		return 0, err
	}

	if filter.StreamID != nil {
		s.cache.Invalidate(ctx, *filter.StreamID)
	} else {
		s.cache.InvalidateAll(ctx)
	}
	return deleted, nil
}
