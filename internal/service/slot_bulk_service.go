package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/config"
	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/repository"
	"github.com/Muhol/Olabs-sub000/internal/timegrid"
	pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"
)

// ── 批量操作业务错误 ──

var (
	ErrEmptyStreamSelection = pkgerrors.Validation("分流范围不能为空，请传入 \"all\" 或分流列表")
	ErrEmptyDaySelection    = pkgerrors.Validation("星期范围不能为空，请传入 \"all\" 或星期列表")
	ErrTimeRangeInvalid     = pkgerrors.Validation("开始时间必须早于结束时间")
	ErrBreakWithSubject     = pkgerrors.Validation("课间时段不能关联科目")
	ErrWipeNotConfirmed     = pkgerrors.Validation("未指定任何条件将删除全部时段，请提供正确的确认短语")
)

// SlotBulkService 批量变更引擎：把 (分流范围 × 星期范围) 展开为逐条的时段存储调用
//
// 设计说明：
//   - "all" 在入口处一次性解析为具体列表，之后只处理显式列表
//   - 展开顺序为分流优先、星期其次，按顺序逐条创建
//   - 单条失败不回滚、不中断，失败组合随结果一并返回
//   - 不与已有时段去重，重复提交会产生重复时段
type SlotBulkService interface {
	BulkCreate(ctx context.Context, req *dto.BulkCreateSlotsRequest, callerID string) (*dto.BulkCreateSlotsResponse, error)
	BulkDelete(ctx context.Context, req *dto.BulkDeleteSlotsRequest, callerID string) (*dto.BulkDeleteSlotsResponse, error)
}

type slotBulkService struct {
	cfg    *config.TimetableConfig
	repo   *repository.Repository
	slots  SlotService
	logger *zap.Logger
}

// NewSlotBulkService 创建 SlotBulkService 实例
func NewSlotBulkService(cfg *config.TimetableConfig, repo *repository.Repository, slots SlotService, logger *zap.Logger) SlotBulkService {
	return &slotBulkService{cfg: cfg, repo: repo, slots: slots, logger: logger}
}

// ────────────────────── BulkCreate ──────────────────────

// BulkCreate 部分失败时返回结果的同时返回 *pkgerrors.PartialBatchFailure
func (s *slotBulkService) BulkCreate(ctx context.Context, req *dto.BulkCreateSlotsRequest, callerID string) (*dto.BulkCreateSlotsResponse, error) {
	// 1. 模板校验：任何一项不通过则整单拒绝
	if err := s.validateTemplate(ctx, req); err != nil {
		return nil, err
	}

	// 2. 解析选择范围
	streamIDs, err := s.resolveStreams(ctx, req.StreamIDs)
	if err != nil {
		return nil, err
	}
	days, err := resolveDays(req.Days)
	if err != nil {
		return nil, err
	}

	// 3. 展开：分流优先、星期其次；周视图缓存在全部创建结束后按分流各失效一次
	batchCtx, batch := withInvalidationBatch(ctx)
	resp := &dto.BulkCreateSlotsResponse{}
	for _, streamID := range streamIDs {
		for _, day := range days {
			_, err := s.slots.Create(batchCtx, CreateSlotParams{
				StreamID:  streamID,
				SubjectID: req.SubjectID,
				DayOfWeek: day,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Type:      model.SlotType(req.Type),
			}, callerID)
			if err != nil {
				resp.Failures = append(resp.Failures, pkgerrors.FailedPair{
					StreamID:  streamID,
					DayOfWeek: day,
					Reason:    err.Error(),
				})
				continue
			}
			resp.CreatedCount++
		}
	}
	resp.FailedCount = len(resp.Failures)
	batch.flush(ctx)

	s.logger.Info("批量创建时段完成",
		zap.Int("created", resp.CreatedCount),
		zap.Int("failed", resp.FailedCount),
		zap.Int("streams", len(streamIDs)),
		zap.Int("days", len(days)),
		zap.String("caller_id", callerID),
	)

	if resp.FailedCount > 0 {
		return resp, &pkgerrors.PartialBatchFailure{
			Created: resp.CreatedCount,
			Failed:  resp.Failures,
		}
	}
	return resp, nil
}

func (s *slotBulkService) validateTemplate(ctx context.Context, req *dto.BulkCreateSlotsRequest) error {
	if req.StreamIDs.IsZero() {
		return ErrEmptyStreamSelection
	}
	if req.Days.IsZero() {
		return ErrEmptyDaySelection
	}
	if !req.Days.All {
		for _, d := range req.Days.Items {
			if !timegrid.ValidDay(d) {
				return ErrInvalidDay
			}
		}
	}

	slotType := model.SlotType(req.Type)
	if !slotType.Valid() {
		return ErrInvalidSlotType
	}
	if strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return ErrSlotFieldRequired
	}
	if !timegrid.Before(req.StartTime, req.EndTime) {
		return ErrTimeRangeInvalid
	}

	if req.SubjectID != nil {
		if slotType == model.SlotTypeBreak {
			return ErrBreakWithSubject
		}
		if _, err := s.lookupSubject(ctx, *req.SubjectID); err != nil {
			return err
		}
	}
	return nil
}

func (s *slotBulkService) lookupSubject(ctx context.Context, id string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("subject_id", id), zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func (s *slotBulkService) resolveStreams(ctx context.Context, sel dto.Selection[string]) ([]string, error) {
	if !sel.All {
		return sel.Distinct(), nil
	}
	ids, err := s.repo.Stream.ListIDs(ctx)
	if err != nil {
		s.logger.Error("查询全部分流失败", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

func resolveDays(sel dto.Selection[int]) ([]int, error) {
	if sel.All {
		days := make([]int, len(timegrid.Days))
		copy(days, timegrid.Days)
		return days, nil
	}
	days := sel.Distinct()
	if len(days) == 0 {
		return nil, ErrEmptyDaySelection
	}
	return days, nil
}

// ────────────────────── BulkDelete ──────────────────────

func (s *slotBulkService) BulkDelete(ctx context.Context, req *dto.BulkDeleteSlotsRequest, callerID string) (*dto.BulkDeleteSlotsResponse, error) {
	filter := repository.SlotFilter{
		StreamID:  req.StreamID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if filter.DayOfWeek != nil && !timegrid.ValidDay(*filter.DayOfWeek) {
		return nil, ErrInvalidDay
	}
	if filter.IsEmpty() && req.Confirm != s.cfg.WipeConfirmPhrase {
		return nil, ErrWipeNotConfirmed
	}

	deleted, err := s.slots.DeleteWhere(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() {
		s.logger.Warn("已删除全部课表时段",
			zap.Int64("deleted", deleted),
			zap.String("caller_id", callerID),
		)
	} else {
		s.logger.Info("按条件删除时段完成",
			zap.Int64("deleted", deleted),
			zap.String("caller_id", callerID),
		)
	}

	return &dto.BulkDeleteSlotsResponse{DeletedCount: deleted}, nil
}
