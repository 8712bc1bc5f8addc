package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/config"
	"github.com/Muhol/Olabs-sub000/internal/repository"
	"github.com/Muhol/Olabs-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Slot       SlotService
	SlotBulk   SlotBulkService
	Projection SlotProjectionService
	Reassign   SlotReassignService
	Export     TimetableExportService
	Stream     StreamService
	Subject    SubjectService
}

// NewService 创建 Service 聚合；rdb 为 nil 时周视图不走缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	cache := NewWeekViewCache(rdb, cfg.Timetable.WeekCacheTTL, logger)

	var policy SubjectScopePolicy
	if cfg.Timetable.EnforceSubjectScope {
		policy = NewClassScopePolicy(repo)
	}

	slot := NewSlotService(repo, cache, logger)
	projection := NewSlotProjectionService(repo, slot, cache, logger)

	return &Service{
		Slot:       slot,
		SlotBulk:   NewSlotBulkService(&cfg.Timetable, repo, slot, logger),
		Projection: projection,
		Reassign:   NewSlotReassignService(repo, slot, projection, policy, logger),
		Export:     NewTimetableExportService(&cfg.Timetable, projection, logger),
		Stream:     NewStreamService(repo, logger),
		Subject:    NewSubjectService(repo, logger),
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
