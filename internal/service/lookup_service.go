package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/repository"
)

// ── 分流 / 科目只读查询（管理端下拉框数据源） ──

// StreamService 分流查询接口
type StreamService interface {
	List(ctx context.Context, req *dto.StreamListRequest) ([]dto.StreamResponse, error)
}

type streamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStreamService 创建 StreamService 实例
func NewStreamService(repo *repository.Repository, logger *zap.Logger) StreamService {
	return &streamService{repo: repo, logger: logger}
}

func (s *streamService) List(ctx context.Context, req *dto.StreamListRequest) ([]dto.StreamResponse, error) {
	streams, err := s.repo.Stream.List(ctx, req.ClassID)
	if err != nil {
		s.logger.Error("查询分流列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.StreamResponse, 0, len(streams))
	for _, st := range streams {
		item := dto.StreamResponse{
			ID:           st.StreamID,
			ClassID:      st.ClassID,
			Name:         st.Name,
			StudentCount: st.StudentCount,
		}
		if st.Class != nil {
			item.ClassName = st.Class.Name
		}
		list = append(list, item)
	}
	return list, nil
}

// SubjectService 科目查询接口
type SubjectService interface {
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, repository.SubjectFilter{
		ClassID:   req.ClassID,
		StreamID:  req.StreamID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		s.logger.Error("查询科目列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		list = append(list, dto.SubjectResponse{
			ID:           sub.SubjectID,
			ClassID:      sub.ClassID,
			StreamID:     sub.StreamID,
			Name:         sub.Name,
			IsCompulsory: sub.IsCompulsory,
			TeacherID:    sub.TeacherID,
		})
	}
	return list, nil
}
