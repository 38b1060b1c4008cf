package repository

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"conn-hub/internal/core/paginate"
	"conn-hub/internal/model"
	pkgErrors "conn-hub/pkg/responses"
)

// ConnectionRepository 连接记录存储
//
// 不存在时返回 ErrRecordNotFound，conn_id 重复时返回 ErrRecordExists。
type ConnectionRepository interface {
	Create(ctx context.Context, conn *model.Connection) error
	GetByConnID(ctx context.Context, connID string) (*model.Connection, error)
	List(ctx context.Context, page paginate.Page) ([]*model.Connection, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, conn *model.Connection) error
	Delete(ctx context.Context, connID string) error
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *model.Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.ErrRecordExists
		}
		return pkgErrors.Wrap(http.StatusInternalServerError, "创建连接失败", err)
	}
	return nil
}

func (r *connectionRepository) GetByConnID(ctx context.Context, connID string) (*model.Connection, error) {
	var conn model.Connection
	if err := r.db.WithContext(ctx).Where("conn_id = ?", connID).First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(http.StatusInternalServerError, "查询连接失败", err)
	}
	return &conn, nil
}

func (r *connectionRepository) List(ctx context.Context, page paginate.Page) ([]*model.Connection, int64, error) {
	var conns []*model.Connection

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&model.Connection{})
	if err := applyOptions(query, WithPage(page)).Find(&conns).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(http.StatusInternalServerError, "查询连接列表失败", err)
	}
	return conns, total, nil
}

func (r *connectionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Connection{}).Count(&total).Error; err != nil {
		return 0, pkgErrors.Wrap(http.StatusInternalServerError, "统计连接数量失败", err)
	}
	return total, nil
}

// Update 按主键整行保存，nil 字段写为 NULL
func (r *connectionRepository) Update(ctx context.Context, conn *model.Connection) error {
	if err := r.db.WithContext(ctx).Save(conn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgErrors.ErrRecordExists
		}
		return pkgErrors.Wrap(http.StatusInternalServerError, "更新连接失败", err)
	}
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, connID string) error {
	result := r.db.WithContext(ctx).Where("conn_id = ?", connID).Delete(&model.Connection{})
	if result.Error != nil {
		return pkgErrors.Wrap(http.StatusInternalServerError, "删除连接失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
