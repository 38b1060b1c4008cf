// Package paginate 列表排序与分页
//
// 只做纯计算：解析 order_by、限定 limit/offset，并可直接作用于内存中的集合。
// 数据库实现使用 Page 中的列名自行拼接 ORDER BY / LIMIT / OFFSET。
package paginate

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxLimit 未配置时的单页上限
const DefaultMaxLimit = 100

// DescPrefix 降序前缀
const DescPrefix = "-"

// OrderingError order_by 指定了不可排序或不存在的字段
type OrderingError struct {
	Attr string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("Ordering with '%s' is disallowed or the attribute does not exist on the model", e.Attr)
}

// Attribute 可排序字段
type Attribute[T any] struct {
	Name    string           // 对外名称，如 connection_id
	Column  string           // 数据库列名
	Compare func(a, b T) int // 升序比较
}

// Page 解析后的分页参数
type Page struct {
	OrderBy       string // 对外名称
	Column        string
	Desc          bool
	DefaultColumn string // 次级排序列，保证结果确定
	Limit         int
	Offset        int
}

// Engine 排序分页引擎
type Engine[T any] struct {
	attrs    map[string]Attribute[T]
	fallback Attribute[T]
	maxLimit int
}

// NewEngine fallback 为默认排序字段，同时作为相同值时的次级排序
func NewEngine[T any](maxLimit int, fallback Attribute[T], attrs ...Attribute[T]) *Engine[T] {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	m := make(map[string]Attribute[T], len(attrs)+1)
	m[fallback.Name] = fallback
	for _, a := range attrs {
		m[a.Name] = a
	}
	return &Engine[T]{attrs: m, fallback: fallback, maxLimit: maxLimit}
}

// MaxLimit 单页上限
func (e *Engine[T]) MaxLimit() int {
	return e.maxLimit
}

// Resolve 解析排序及分页参数
//
// limit 为 nil 或 0 时使用上限，超过上限时截断；负数 offset 视为 0。
// 仅 order_by 无法识别时返回错误。
func (e *Engine[T]) Resolve(orderBy string, limit *int, offset int) (Page, error) {
	attr := e.fallback
	desc := false

	if orderBy != "" {
		name := orderBy
		if strings.HasPrefix(name, DescPrefix) {
			desc = true
			name = strings.TrimPrefix(name, DescPrefix)
		}
		a, ok := e.attrs[name]
		if !ok {
			return Page{}, &OrderingError{Attr: name}
		}
		attr = a
	}

	if offset < 0 {
		offset = 0
	}

	return Page{
		OrderBy:       attr.Name,
		Column:        attr.Column,
		Desc:          desc,
		DefaultColumn: e.fallback.Column,
		Limit:         e.resolveLimit(limit),
		Offset:        offset,
	}, nil
}

func (e *Engine[T]) resolveLimit(limit *int) int {
	if limit == nil || *limit <= 0 || *limit > e.maxLimit {
		return e.maxLimit
	}
	return *limit
}

// Apply 对内存集合排序并截取，返回当页数据与总数；不修改入参
func (e *Engine[T]) Apply(items []T, p Page) ([]T, int64) {
	total := int64(len(items))

	attr, ok := e.attrs[p.OrderBy]
	if !ok {
		attr = e.fallback
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		c := attr.Compare(sorted[i], sorted[j])
		if p.Desc {
			c = -c
		}
		if c == 0 && attr.Name != e.fallback.Name {
			c = e.fallback.Compare(sorted[i], sorted[j])
		}
		return c < 0
	})

	if p.Offset >= len(sorted) {
		return []T{}, total
	}
	end := len(sorted)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return sorted[p.Offset:end], total
}

// OrderClause 生成 SQL ORDER BY 子句
func (p Page) OrderClause() string {
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}
	clause := fmt.Sprintf("%s %s", p.Column, dir)
	if p.DefaultColumn != "" && p.DefaultColumn != p.Column {
		clause += fmt.Sprintf(", %s ASC", p.DefaultColumn)
	}
	return clause
}
