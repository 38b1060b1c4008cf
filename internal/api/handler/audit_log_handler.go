package handler

import (
	"github.com/gin-gonic/gin"

	"conn-hub/internal/service"
	"conn-hub/pkg/responses"
)

const defaultAuditLogLimit = 100

type AuditLogHandler struct {
	auditService service.AuditService
}

func NewAuditLogHandler(auditService service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

type listAuditLogsQuery struct {
	ConnectionID string `form:"connection_id"`
	Limit        int    `form:"limit" binding:"omitempty,gte=0,lte=1000"`
}

// List 审计日志列表
// @Summary 审计日志列表（按时间倒序）
// @Tags AuditLog
// @Produce json
// @Param connection_id query string false "连接ID"
// @Param limit query int false "数量，默认100"
// @Success 200 {array} model.AuditLog
// @Router /api/v1/audit-logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	var query listAuditLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.Error(c, responses.BadRequest(err.Error()))
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultAuditLogLimit
	}

	logs, err := h.auditService.List(c.Request.Context(), query.ConnectionID, query.Limit)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, logs)
}
