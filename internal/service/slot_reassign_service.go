package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/repository"
	pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"
)

var (
	ErrBreakSlotReassign = pkgerrors.Validation("课间时段不能分配科目")
	ErrSubjectOutOfScope = pkgerrors.Validation("科目不属于该时段所在的班级或分流")
)

// SubjectScopePolicy 改课时的科目归属校验
// 返回 nil 表示允许；默认不启用，任何科目都可以分配到任何分流
type SubjectScopePolicy interface {
	Check(ctx context.Context, slot *model.TimetableSlot, subject *model.Subject) error
}

// classScopePolicy 要求科目属于分流所在班级，且科目分流范围为空或等于该分流
type classScopePolicy struct {
	repo *repository.Repository
}

// NewClassScopePolicy 创建按班级/分流校验的 SubjectScopePolicy
func NewClassScopePolicy(repo *repository.Repository) SubjectScopePolicy {
	return &classScopePolicy{repo: repo}
}

func (p *classScopePolicy) Check(ctx context.Context, slot *model.TimetableSlot, subject *model.Subject) error {
	stream, err := p.repo.Stream.GetByID(ctx, slot.StreamID)
	if err != nil {
		if isRecordNotFound(err) {
			return ErrStreamNotFound
		}
		return err
	}
	if !subject.AppliesToStream(stream.ClassID, stream.StreamID) {
		return ErrSubjectOutOfScope
	}
	return nil
}

// SlotReassignService 改课流程：在不改变时段 ID 的前提下替换科目
//
// 设计说明：
//   - 课间时段拒绝改课
//   - subject_id 为 nil 表示清空，时段回到未排课状态
//   - 不级联考勤、选课等下游数据
type SlotReassignService interface {
	Reassign(ctx context.Context, slotID string, req *dto.ReassignSubjectRequest, callerID string) (*dto.SlotView, error)
}

type slotReassignService struct {
	repo       *repository.Repository
	slots      SlotService
	projection SlotProjectionService
	policy     SubjectScopePolicy // 可为 nil
	logger     *zap.Logger
}

// NewSlotReassignService 创建 SlotReassignService 实例；policy 传 nil 表示不校验科目归属
func NewSlotReassignService(
	repo *repository.Repository,
	slots SlotService,
	projection SlotProjectionService,
	policy SubjectScopePolicy,
	logger *zap.Logger,
) SlotReassignService {
	return &slotReassignService{
		repo:       repo,
		slots:      slots,
		projection: projection,
		policy:     policy,
		logger:     logger,
	}
}

func (s *slotReassignService) Reassign(ctx context.Context, slotID string, req *dto.ReassignSubjectRequest, callerID string) (*dto.SlotView, error) {
	// 1. 时段存在且不是课间
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Type == model.SlotTypeBreak {
		return nil, ErrBreakSlotReassign
	}

	// 2. 科目存在性与归属
	if req.SubjectID != nil {
		subject, err := s.repo.Subject.GetByID(ctx, *req.SubjectID)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, ErrSubjectNotFound
			}
			s.logger.Error("查询科目失败", zap.String("subject_id", *req.SubjectID), zap.Error(err))
			return nil, err
		}
		if s.policy != nil {
			if err := s.policy.Check(ctx, slot, subject); err != nil {
				return nil, err
			}
		}
	}

	// 3. 原地更新
	if _, err := s.slots.UpdateSubject(ctx, slotID, req.SubjectID, callerID); err != nil {
		return nil, err
	}

	s.logger.Info("时段科目已调整",
		zap.String("slot_id", slotID),
		zap.Stringp("from", slot.SubjectID),
		zap.Stringp("to", req.SubjectID),
		zap.String("caller_id", callerID),
	)

	return s.projection.GetSlot(ctx, slotID)
}
