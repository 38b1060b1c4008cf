// Package connection 连接记录的字段目录、局部更新与排序规则
package connection

import "conn-hub/internal/model"

// FieldClass 字段分类
type FieldClass int

const (
	FieldUnknown  FieldClass = iota // 未知字段
	FieldIdentity                   // 标识字段，创建后不可修改
	FieldMutable                    // 可修改字段
)

func (c FieldClass) String() string {
	switch c {
	case FieldIdentity:
		return "identity"
	case FieldMutable:
		return "mutable"
	default:
		return "unknown"
	}
}

// 对外字段名
const (
	FieldConnectionID = "connection_id"
	FieldConnType     = "conn_type"
	FieldDescription  = "description"
	FieldHost         = "host"
	FieldLogin        = "login"
	FieldSchema       = "schema"
	FieldPort         = "port"
	FieldPassword     = "password"
	FieldExtra        = "extra"
)

// field 目录项，copy 将 src 中该字段原样复制到 dst（nil 也复制）
type field struct {
	class FieldClass
	copy  func(dst, src *model.Connection)
}

var catalog = map[string]field{
	FieldConnectionID: {class: FieldIdentity},
	FieldConnType: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.ConnType = src.ConnType
	}},
	FieldDescription: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Description = src.Description
	}},
	FieldHost: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Host = src.Host
	}},
	FieldLogin: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Login = src.Login
	}},
	FieldSchema: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Schema = src.Schema
	}},
	FieldPort: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Port = src.Port
	}},
	FieldPassword: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Password = src.Password
	}},
	FieldExtra: {class: FieldMutable, copy: func(dst, src *model.Connection) {
		dst.Extra = src.Extra
	}},
}

// mutableOrder 可修改字段的固定顺序
var mutableOrder = []string{
	FieldConnType,
	FieldDescription,
	FieldHost,
	FieldLogin,
	FieldSchema,
	FieldPort,
	FieldPassword,
	FieldExtra,
}

// Classify 返回字段分类
func Classify(name string) FieldClass {
	f, ok := catalog[name]
	if !ok {
		return FieldUnknown
	}
	return f.class
}

// MaskSelectable 字段能否出现在 update_mask 中
func MaskSelectable(name string) bool {
	return Classify(name) == FieldMutable
}

// BodyAccepted 字段能否出现在请求体中
func BodyAccepted(name string) bool {
	return Classify(name) != FieldUnknown
}

// MutableFields 所有可修改字段
func MutableFields() []string {
	out := make([]string, len(mutableOrder))
	copy(out, mutableOrder)
	return out
}

// copyField 调用前须确认 name 为可修改字段
func copyField(name string, dst, src *model.Connection) {
	catalog[name].copy(dst, src)
}
