package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/internal/model"
)

// StreamRepository 分流数据访问接口（只读，分流的增删改由外部 CRUD 模块负责）
type StreamRepository interface {
	GetByID(ctx context.Context, id string) (*model.Stream, error)
	List(ctx context.Context, classID string) ([]model.Stream, error)
	// ListIDs 全部分流 ID，按班级、名称、ID 排序以保证批量展开顺序稳定
	ListIDs(ctx context.Context) ([]string, error)
}

type streamRepo struct {
	db *gorm.DB
}

// NewStreamRepo 创建 StreamRepository 实例
func NewStreamRepo(db *gorm.DB) StreamRepository {
	return &streamRepo{db: db}
}

func (r *streamRepo) GetByID(ctx context.Context, id string) (*model.Stream, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var stream model.Stream
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("stream_id = ?", id).
		First(&stream).Error
	if err != nil {
		return nil, err
	}
	return &stream, nil
}

func (r *streamRepo) List(ctx context.Context, classID string) ([]model.Stream, error) {
	var streams []model.Stream
	db := r.db.WithContext(ctx).Preload("Class")
	if classID != "" {
		db = db.Where("class_id = ?", classID)
	}
	err := db.Order("class_id ASC, name ASC, stream_id ASC").Find(&streams).Error
	return streams, err
}

func (r *streamRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Stream{}).
		Order("class_id ASC, name ASC, stream_id ASC").
		Pluck("stream_id", &ids).Error
	return ids, err
}
