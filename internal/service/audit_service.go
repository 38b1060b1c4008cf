package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"conn-hub/internal/model"
	"conn-hub/internal/pkg/logger"
	"conn-hub/internal/repository"
)

// AuditService 审计日志
type AuditService interface {
	// Record 写入失败只记录日志，不影响主流程
	Record(ctx context.Context, event, connID, owner string, extra map[string]interface{})
	List(ctx context.Context, connID string, limit int) ([]*model.AuditLog, error)
	// Purge 清理 retentionDays 天之前的记录，retentionDays<=0 不清理
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

type auditService struct {
	repo    repository.AuditLogRepository
	enabled bool
	now     func() time.Time
}

func NewAuditService(repo repository.AuditLogRepository, enabled bool) AuditService {
	return &auditService{repo: repo, enabled: enabled, now: time.Now}
}

func (s *auditService) Record(ctx context.Context, event, connID, owner string, extra map[string]interface{}) {
	if !s.enabled {
		return
	}

	entry := &model.AuditLog{
		Event:  event,
		ConnID: connID,
		Owner:  owner,
	}
	if len(extra) > 0 {
		raw, err := json.Marshal(extra)
		if err != nil {
			logger.Warn("序列化审计信息失败", zap.String("event", event), zap.Error(err))
		} else {
			entry.Extra = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Warn("写入审计日志失败",
			zap.String("event", event),
			zap.String("conn_id", connID),
			zap.Error(err),
		)
	}
}

func (s *auditService) List(ctx context.Context, connID string, limit int) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, connID, limit)
}

func (s *auditService) Purge(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	before := s.now().AddDate(0, 0, -retentionDays)
	purged, err := s.repo.PurgeBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		logger.Info("清理审计日志", zap.Int64("purged", purged), zap.Time("before", before))
	}
	return purged, nil
}
