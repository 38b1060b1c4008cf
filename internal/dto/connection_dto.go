package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"conn-hub/internal/core/connection"
	"conn-hub/internal/model"
	"conn-hub/pkg/responses"
	"conn-hub/pkg/utils"
)

// ConnectionPayload 创建/更新/测试连接的请求体
// 字段为 nil 表示请求体中未携带或显式为 null
type ConnectionPayload struct {
	ConnectionID *string `json:"connection_id" yaml:"connection_id"`
	ConnType     *string `json:"conn_type" yaml:"conn_type"`
	Description  *string `json:"description" yaml:"description"`
	Host         *string `json:"host" yaml:"host"`
	Login        *string `json:"login" yaml:"login"`
	Schema       *string `json:"schema" yaml:"schema"`
	Port         *int    `json:"port" yaml:"port" validate:"omitempty,gte=0,lte=65535"`
	Password     *string `json:"password" yaml:"password"`
	Extra        *string `json:"extra" yaml:"extra"`
}

const errNotObject = "request body must be a JSON object"

// createRequired 创建时的必填项
type createRequired struct {
	ConnectionID *string `json:"connection_id" validate:"required"`
	ConnType     *string `json:"conn_type" validate:"required"`
}

// DecodeConnectionPayload 解析请求体，未知字段、类型错误均返回 400
func DecodeConnectionPayload(raw []byte) (*ConnectionPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, responses.BadRequest(errNotObject)
		}
		return nil, responses.BadRequest(utils.FormatValidationError(err))
	}
	if fields == nil {
		return nil, responses.BadRequest(errNotObject)
	}

	var unknown []string
	for name := range fields {
		if !connection.BodyAccepted(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		msgs := make([]string, 0, len(unknown))
		for _, name := range unknown {
			msgs = append(msgs, fmt.Sprintf("field '%s' is unknown", name))
		}
		return nil, responses.BadRequest(strings.Join(msgs, "; "))
	}

	var p ConnectionPayload
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&p); err != nil {
		return nil, responses.BadRequest(utils.FormatValidationError(err))
	}
	if err := utils.ValidateStruct(&p); err != nil {
		return nil, responses.BadRequest(utils.FormatValidationError(err))
	}
	return &p, nil
}

// ValidateCreate 创建及测试连接时 connection_id、conn_type 必填
func (p *ConnectionPayload) ValidateCreate() error {
	if err := utils.ValidateStruct(&createRequired{ConnectionID: p.ConnectionID, ConnType: p.ConnType}); err != nil {
		return responses.BadRequest(utils.FormatValidationError(err))
	}
	if err := utils.ValidateStruct(p); err != nil {
		return responses.BadRequest(utils.FormatValidationError(err))
	}
	return nil
}

// ToModel 转换为记录，未携带的字段保持 nil/空
func (p *ConnectionPayload) ToModel() *model.Connection {
	c := &model.Connection{
		Description: p.Description,
		Host:        p.Host,
		Login:       p.Login,
		Schema:      p.Schema,
		Port:        p.Port,
		Extra:       p.Extra,
	}
	if p.ConnectionID != nil {
		c.ConnID = *p.ConnectionID
	}
	if p.ConnType != nil {
		c.ConnType = *p.ConnType
	}
	if p.Password != nil {
		secret := model.Secret(*p.Password)
		c.Password = &secret
	}
	return c.Clone()
}

// ConnectionResponse 连接详情，不含 password，extra 已脱敏
type ConnectionResponse struct {
	ConnectionID string  `json:"connection_id"`
	ConnType     string  `json:"conn_type"`
	Description  *string `json:"description"`
	Host         *string `json:"host"`
	Login        *string `json:"login"`
	Schema       *string `json:"schema"`
	Port         *int    `json:"port"`
	Extra        *string `json:"extra"`
}

// ConnectionCollectionResponse 连接列表
type ConnectionCollectionResponse struct {
	Connections  []*ConnectionResponse `json:"connections"`
	TotalEntries int64                 `json:"total_entries"`
}

// ConnectionTestResponse 连接测试结果
type ConnectionTestResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ListConnectionsQuery 列表查询参数
type ListConnectionsQuery struct {
	Limit   *int
	Offset  int
	OrderBy string
}

// ListConnectionsParams 列表查询的原始参数
//
// 数值按字符串绑定，越界时取边界值再交给分页引擎截断，非数字才报错。
type ListConnectionsParams struct {
	Limit   string `form:"limit"`
	Offset  string `form:"offset"`
	OrderBy string `form:"order_by"`
}

// ToQuery 转换为列表查询
func (p *ListConnectionsParams) ToQuery() (*ListConnectionsQuery, error) {
	q := &ListConnectionsQuery{OrderBy: p.OrderBy}
	if p.Limit != "" {
		limit, err := clampedInt("limit", p.Limit)
		if err != nil {
			return nil, err
		}
		q.Limit = &limit
	}
	if p.Offset != "" {
		offset, err := clampedInt("offset", p.Offset)
		if err != nil {
			return nil, err
		}
		q.Offset = offset
	}
	return q, nil
}

// clampedInt 溢出时 strconv 返回 int 的最大/最小值
func clampedInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, responses.BadRequest(fmt.Sprintf("field '%s' should be int", field))
	}
	return v, nil
}
