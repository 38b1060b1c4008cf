package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"conn-hub/internal/pkg/config"
	"conn-hub/internal/service"
)

const (
	jobAuditPurge         = "audit_purge"
	defaultAuditPurgeCron = "0 0 3 * * *"
	auditPurgeTimeout     = 5 * time.Minute
)

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	auditSvc      service.AuditService
	cfg           *config.AuditConfig
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(auditSvc service.AuditService, logger *zap.Logger, cfg *config.AuditConfig) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		auditSvc:      auditSvc,
		cfg:           cfg,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器，审计关闭或保留天数<=0 时不注册清理任务
func (s *Scheduler) Start() error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	if s.cfg.Enabled && s.cfg.RetentionDays > 0 {
		// cron 表达式格式: 秒 分 时 日 月 周
		cronExpr := s.cfg.PurgeCron
		if cronExpr == "" {
			cronExpr = defaultAuditPurgeCron
			log.Warnw("未配置audit.purge_cron，使用默认值", "cron", cronExpr)
		}

		entryID, err := s.cron.AddFunc(cronExpr, func() {
			if _, err := s.TriggerAuditPurge(); err != nil {
				log.Errorf("审计日志清理任务执行失败: %v", err)
			}
		})
		if err != nil {
			log.Errorf("注册审计日志清理任务: %v 失败: %v", cronExpr, err)
			return err
		}

		s.cronSchedules[jobAuditPurge] = entryID
		log.Infof("审计日志清理任务已注册: %s entry_id=%d retention_days=%d", cronExpr, entryID, s.cfg.RetentionDays)
	}

	// 启动 cron
	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// Entries 已注册的任务
func (s *Scheduler) Entries() map[string]cron.EntryID {
	out := make(map[string]cron.EntryID, len(s.cronSchedules))
	for k, v := range s.cronSchedules {
		out[k] = v
	}
	return out
}

// TriggerAuditPurge 手动触发审计日志清理（用于测试或手动触发）
func (s *Scheduler) TriggerAuditPurge() (int64, error) {
	s.logger.Info("执行定时任务: 审计日志清理")
	ctx, cancel := context.WithTimeout(context.Background(), auditPurgeTimeout)
	defer cancel()
	return s.auditSvc.Purge(ctx, s.cfg.RetentionDays)
}
