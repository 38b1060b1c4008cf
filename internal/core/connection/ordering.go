package connection

import (
	"cmp"

	"conn-hub/internal/core/paginate"
	"conn-hub/internal/model"
)

// compareOptional nil 排在最前，与 MySQL 升序时 NULL 在前一致
func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

// NewPaginator 连接列表的排序分页引擎，默认按 connection_id 升序
func NewPaginator(maxLimit int) *paginate.Engine[*model.Connection] {
	return paginate.NewEngine(maxLimit,
		paginate.Attribute[*model.Connection]{
			Name:   FieldConnectionID,
			Column: "conn_id",
			Compare: func(a, b *model.Connection) int {
				return cmp.Compare(a.ConnID, b.ConnID)
			},
		},
		paginate.Attribute[*model.Connection]{
			Name:   FieldConnType,
			Column: "conn_type",
			Compare: func(a, b *model.Connection) int {
				return cmp.Compare(a.ConnType, b.ConnType)
			},
		},
		paginate.Attribute[*model.Connection]{
			Name:   FieldDescription,
			Column: "description",
			Compare: func(a, b *model.Connection) int {
				return compareOptional(a.Description, b.Description)
			},
		},
		paginate.Attribute[*model.Connection]{
			Name:   FieldHost,
			Column: "host",
			Compare: func(a, b *model.Connection) int {
				return compareOptional(a.Host, b.Host)
			},
		},
		paginate.Attribute[*model.Connection]{
			Name:   FieldPort,
			Column: "port",
			Compare: func(a, b *model.Connection) int {
				return compareOptional(a.Port, b.Port)
			},
		},
		// 自增主键，可按创建顺序排序
		paginate.Attribute[*model.Connection]{
			Name:   "id",
			Column: "id",
			Compare: func(a, b *model.Connection) int {
				return cmp.Compare(a.ID, b.ID)
			},
		},
	)
}
