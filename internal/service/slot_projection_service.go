package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/repository"
	"github.com/Muhol/Olabs-sub000/internal/timegrid"
	pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"
)

var ErrTeacherRequired = pkgerrors.Validation("教师 ID 不能为空")

// SlotProjectionService 时段只读视图：按星期分组、按开始时间排序
//
// 设计说明：
//   - days 始终包含 1-6 六个键，没有时段的日子为空数组
//   - 每天内按 timegrid.Compare 排序，相同开始时间再按结束时间、ID 排序
//   - 科目 ID 无法解析时记 Warn，subject_name 置空，不影响整个视图
type SlotProjectionService interface {
	WeekView(ctx context.Context, streamID string) (*dto.WeekViewResponse, error)
	TeacherWeekView(ctx context.Context, teacherID string) (*dto.WeekViewResponse, error)
	GetSlot(ctx context.Context, id string) (*dto.SlotView, error)
}

type slotProjectionService struct {
	repo   *repository.Repository
	slots  SlotService
	cache  WeekViewCache
	logger *zap.Logger
}

// NewSlotProjectionService 创建 SlotProjectionService 实例
func NewSlotProjectionService(repo *repository.Repository, slots SlotService, cache WeekViewCache, logger *zap.Logger) SlotProjectionService {
	return &slotProjectionService{repo: repo, slots: slots, cache: cache, logger: logger}
}

// ────────────────────── WeekView ──────────────────────

func (s *slotProjectionService) WeekView(ctx context.Context, streamID string) (*dto.WeekViewResponse, error) {
	if view, ok := s.cache.Get(ctx, streamID); ok {
		return view, nil
	}

	stream, err := s.repo.Stream.GetByID(ctx, streamID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrStreamNotFound
		}
		s.logger.Error("查询分流失败", zap.String("stream_id", streamID), zap.Error(err))
		return nil, err
	}

	slots, err := s.slots.ListByStream(ctx, streamID)
	if err != nil {
		return nil, err
	}

	names, resolved := s.subjectNames(ctx, slots)

	view := &dto.WeekViewResponse{
		StreamID:   stream.StreamID,
		StreamName: stream.Name,
		Days:       emptyWeek(),
	}
	for i := range slots {
		sv := s.project(&slots[i], names, resolved)
		sv.StreamName = stream.Name
		s.place(view, sv)
	}
	sortWeek(view)

	// 科目查询失败时视图不完整，不写缓存
	if resolved {
		s.cache.Set(ctx, streamID, view)
	}
	return view, nil
}

// ────────────────────── TeacherWeekView ──────────────────────

// TeacherWeekView 任课教师视角：跨分流汇总其科目的全部时段，结构与分流周视图一致
func (s *slotProjectionService) TeacherWeekView(ctx context.Context, teacherID string) (*dto.WeekViewResponse, error) {
	if strings.TrimSpace(teacherID) == "" {
		return nil, ErrTeacherRequired
	}

	subjects, err := s.repo.Subject.List(ctx, repository.SubjectFilter{TeacherID: teacherID})
	if err != nil {
		s.logger.Error("查询教师科目失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	names := make(map[string]string, len(subjects))
	ids := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		names[sub.SubjectID] = sub.Name
		ids = append(ids, sub.SubjectID)
	}

	slots, err := s.repo.Slot.ListBySubjects(ctx, ids)
	if err != nil {
		s.logger.Error("查询教师时段失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	view := &dto.WeekViewResponse{
		TeacherID: teacherID,
		Days:      emptyWeek(),
	}
	for i := range slots {
		sv := s.project(&slots[i], names, true)
		if slots[i].Stream != nil {
			sv.StreamName = slots[i].Stream.Name
		}
		s.place(view, sv)
	}
	sortWeek(view)
	return view, nil
}

// ────────────────────── GetSlot ──────────────────────

func (s *slotProjectionService) GetSlot(ctx context.Context, id string) (*dto.SlotView, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, slot), nil
}

// render 单个时段附带分流与科目名称
func (s *slotProjectionService) render(ctx context.Context, slot *model.TimetableSlot) *dto.SlotView {
	names, resolved := s.subjectNames(ctx, []model.TimetableSlot{*slot})
	sv := s.project(slot, names, resolved)

	if stream, err := s.repo.Stream.GetByID(ctx, slot.StreamID); err == nil {
		sv.StreamName = stream.Name
	} else {
		s.logger.Warn("查询时段所属分流失败", zap.String("stream_id", slot.StreamID), zap.Error(err))
	}
	return &sv
}

// ── 辅助函数 ──

// subjectNames 批量解析科目名称；查询失败时返回 resolved=false，调用方不应据此判定悬空引用
func (s *slotProjectionService) subjectNames(ctx context.Context, slots []model.TimetableSlot) (map[string]string, bool) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, sl := range slots {
		if sl.SubjectID == nil {
			continue
		}
		if _, ok := seen[*sl.SubjectID]; ok {
			continue
		}
		seen[*sl.SubjectID] = struct{}{}
		ids = append(ids, *sl.SubjectID)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, true
	}

	subjects, err := s.repo.Subject.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("批量查询科目失败，科目名称暂不展示", zap.Error(err))
		return names, false
	}
	for _, sub := range subjects {
		names[sub.SubjectID] = sub.Name
	}
	return names, true
}

func (s *slotProjectionService) project(slot *model.TimetableSlot, names map[string]string, resolved bool) dto.SlotView {
	sv := dto.SlotView{
		ID:        slot.SlotID,
		StreamID:  slot.StreamID,
		SubjectID: slot.SubjectID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Type:      string(slot.Type),
	}
	if slot.SubjectID == nil {
		return sv
	}

	if name, ok := names[*slot.SubjectID]; ok {
		n := name
		sv.SubjectName = &n
	} else if resolved {
		s.logger.Warn("时段引用的科目不存在",
			zap.String("slot_id", slot.SlotID),
			zap.String("subject_id", *slot.SubjectID),
		)
		sv.SubjectMissing = true
	}
	return sv
}

func (s *slotProjectionService) place(view *dto.WeekViewResponse, sv dto.SlotView) {
	day, ok := view.Days[sv.DayOfWeek]
	if !ok {
		s.logger.Warn("时段星期超出范围，已忽略",
			zap.String("slot_id", sv.ID),
			zap.Int("day_of_week", sv.DayOfWeek),
		)
		return
	}
	view.Days[sv.DayOfWeek] = append(day, sv)
}

func emptyWeek() map[int][]dto.SlotView {
	days := make(map[int][]dto.SlotView, len(timegrid.Days))
	for _, d := range timegrid.Days {
		days[d] = []dto.SlotView{}
	}
	return days
}

func sortWeek(view *dto.WeekViewResponse) {
	for _, day := range view.Days {
		sortSlotViews(day)
	}
}

// sortSlotViews 开始时间 → 结束时间 → ID
func sortSlotViews(views []dto.SlotView) {
	sort.SliceStable(views, func(i, j int) bool {
		if c := timegrid.Compare(views[i].StartTime, views[j].StartTime); c != 0 {
			return c < 0
		}
		if c := timegrid.Compare(views[i].EndTime, views[j].EndTime); c != 0 {
			return c < 0
		}
		return views[i].ID < views[j].ID
	})
}
