package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/internal/model"
)

// SubjectFilter 科目查询条件，空字符串表示不限
type SubjectFilter struct {
	ClassID   string
	StreamID  string // 同时包含 stream_id 为空的班级通用科目
	TeacherID string
}

// SubjectRepository 科目数据访问接口（只读，用于存在性校验与名称展示）
type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Subject, error)
	List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error)
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Subject, error) {
	var subjects []model.Subject
	if len(ids) == 0 {
		return subjects, nil
	}
	err := r.db.WithContext(ctx).
		Where("subject_id IN ?", ids).
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	var subjects []model.Subject
	db := r.db.WithContext(ctx)

	if filter.ClassID != "" {
		db = db.Where("class_id = ?", filter.ClassID)
	}
	if filter.StreamID != "" {
		db = db.Where("(stream_id = ? OR (stream_id IS NULL AND class_id = (SELECT class_id FROM streams WHERE stream_id = ?)))",
			filter.StreamID, filter.StreamID)
	}
	if filter.TeacherID != "" {
		db = db.Where("teacher_id = ?", filter.TeacherID)
	}

	err := db.Order("name ASC").Find(&subjects).Error
	return subjects, err
}
