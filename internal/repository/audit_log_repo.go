package repository

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"conn-hub/internal/model"
	pkgErrors "conn-hub/pkg/responses"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	// List 按时间倒序，limit<=0 返回全部
	List(ctx context.Context, connID string, limit int) ([]*model.AuditLog, error)
	// PurgeBefore 删除 before 之前的记录，返回删除条数
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return pkgErrors.Wrap(http.StatusInternalServerError, "写入审计日志失败", err)
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, connID string, limit int) ([]*model.AuditLog, error) {
	var logs []*model.AuditLog
	query := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if connID != "" {
		query = query.Where("conn_id = ?", connID)
	}
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, pkgErrors.Wrap(http.StatusInternalServerError, "查询审计日志失败", err)
	}
	return logs, nil
}

func (r *auditLogRepository) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&model.AuditLog{})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(http.StatusInternalServerError, "清理审计日志失败", result.Error)
	}
	return result.RowsAffected, nil
}

type memoryAuditLogRepository struct {
	mu     sync.Mutex
	nextID int64
	logs   []*model.AuditLog
}

func NewMemoryAuditLogRepository() AuditLogRepository {
	return &memoryAuditLogRepository{}
}

func (r *memoryAuditLogRepository) Create(_ context.Context, log *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	log.ID = r.nextID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	cp := *log
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *memoryAuditLogRepository) List(_ context.Context, connID string, limit int) ([]*model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.AuditLog, 0, len(r.logs))
	for _, l := range r.logs {
		if connID != "" && l.ConnID != connID {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryAuditLogRepository) PurgeBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.logs[:0]
	var purged int64
	for _, l := range r.logs {
		if l.CreatedAt.Before(before) {
			purged++
			continue
		}
		kept = append(kept, l)
	}
	r.logs = kept
	return purged, nil
}
