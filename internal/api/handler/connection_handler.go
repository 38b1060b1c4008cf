package handler

import (
	"github.com/gin-gonic/gin"

	"conn-hub/internal/core/connection"
	"conn-hub/internal/dto"
	"conn-hub/internal/service"
	"conn-hub/pkg/constants"
	"conn-hub/pkg/responses"
	"conn-hub/pkg/utils"
)

const paramConnectionID = "connection_id"

type ConnectionHandler struct {
	connectionService service.ConnectionService
	testEnabled       bool
}

// NewConnectionHandler testEnabled 对应 core.test_connection=Enabled
func NewConnectionHandler(connectionService service.ConnectionService, testEnabled bool) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
		testEnabled:       testEnabled,
	}
}

// List 获取连接列表
// @Summary 获取连接列表
// @Tags Connection
// @Produce json
// @Param limit query int false "单页数量，0 或超过上限时取上限"
// @Param offset query int false "偏移量"
// @Param order_by query string false "排序字段，前缀 - 表示降序"
// @Success 200 {object} dto.ConnectionCollectionResponse
// @Failure 400 {object} responses.Problem
// @Router /api/v1/connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	var params dto.ListConnectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		responses.Error(c, responses.BadRequest(err.Error()))
		return
	}
	query, err := params.ToQuery()
	if err != nil {
		responses.Error(c, err)
		return
	}

	result, err := h.connectionService.List(c.Request.Context(), query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

// Get 获取连接详情
// @Summary 获取连接详情
// @Tags Connection
// @Produce json
// @Param connection_id path string true "连接ID"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 404 {object} responses.Problem
// @Router /api/v1/connections/{connection_id} [get]
func (h *ConnectionHandler) Get(c *gin.Context) {
	conn, err := h.connectionService.Get(c.Request.Context(), c.Param(paramConnectionID))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, conn)
}

// Create 创建连接
// @Summary 创建连接
// @Tags Connection
// @Accept json
// @Produce json
// @Param request body dto.ConnectionPayload true "连接"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} responses.Problem
// @Failure 409 {object} responses.Problem
// @Router /api/v1/connections [post]
func (h *ConnectionHandler) Create(c *gin.Context) {
	req, err := bindPayload(c)
	if err != nil {
		responses.Error(c, err)
		return
	}

	conn, err := h.connectionService.Create(c.Request.Context(), c.GetString(constants.ContextKeyUsername), req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, conn)
}

// Update 更新连接，update_mask 为空时整体替换
// @Summary 更新连接
// @Tags Connection
// @Accept json
// @Produce json
// @Param connection_id path string true "连接ID"
// @Param update_mask query string false "逗号分隔的待更新字段"
// @Param request body dto.ConnectionPayload true "连接"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} responses.Problem
// @Failure 404 {object} responses.Problem
// @Router /api/v1/connections/{connection_id} [patch]
func (h *ConnectionHandler) Update(c *gin.Context) {
	req, err := bindPayload(c)
	if err != nil {
		responses.Error(c, err)
		return
	}

	// 参数可重复出现，也可逗号分隔
	mask := connection.ParseMask(c.QueryArray(constants.QueryUpdateMask)...)
	conn, err := h.connectionService.Update(c.Request.Context(),
		c.GetString(constants.ContextKeyUsername), c.Param(paramConnectionID), req, mask)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, conn)
}

// Delete 删除连接
// @Summary 删除连接
// @Tags Connection
// @Param connection_id path string true "连接ID"
// @Success 204
// @Failure 404 {object} responses.Problem
// @Router /api/v1/connections/{connection_id} [delete]
func (h *ConnectionHandler) Delete(c *gin.Context) {
	if err := h.connectionService.Delete(c.Request.Context(),
		c.GetString(constants.ContextKeyUsername), c.Param(paramConnectionID)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.NoContent(c)
}

// Test 测试连接
// @Summary 测试连接（不保存）
// @Tags Connection
// @Accept json
// @Produce json
// @Param request body dto.ConnectionPayload true "连接"
// @Success 200 {object} dto.ConnectionTestResponse
// @Failure 400 {object} responses.Problem
// @Failure 403 {object} responses.Problem
// @Router /api/v1/connections/test [post]
func (h *ConnectionHandler) Test(c *gin.Context) {
	// 功能开关优先于请求体校验
	if !h.testEnabled {
		responses.Error(c, responses.Forbidden(constants.TestConnectionDisabledMessage))
		return
	}

	req, err := bindPayload(c)
	if err != nil {
		responses.Error(c, err)
		return
	}

	result, err := h.connectionService.Test(c.Request.Context(), req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

func bindPayload(c *gin.Context) (*dto.ConnectionPayload, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, responses.BadRequest(utils.FormatValidationError(err))
	}
	return dto.DecodeConnectionPayload(raw)
}
