package connection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"conn-hub/internal/model"
)

// ErrIdentityMismatch 请求体中的 connection_id 与已有记录不一致
var ErrIdentityMismatch = errors.New("The connection_id cannot be updated.")

// UnknownOrImmutableFieldError update_mask 中含未知字段或不可修改字段
type UnknownOrImmutableFieldError struct {
	Field string
}

func (e *UnknownOrImmutableFieldError) Error() string {
	return fmt.Sprintf("'%s' is unknown or cannot be updated.", e.Field)
}

// ParseMask 合并 update_mask 的多个取值并按逗号拆分，去除空白，保留顺序
//
// 未携带参数时返回 nil；空项保留，由 Resolve 当作未知字段拒绝。
func ParseMask(values ...string) []string {
	if len(values) == 0 {
		return nil
	}
	mask := make([]string, 0, len(values))
	for _, raw := range values {
		mask = append(mask, lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})...)
	}
	return mask
}

// Resolve 将请求体合并到已有记录，返回新记录，不修改入参
//
// payload.ConnID 为空表示请求体未携带 connection_id。
// mask 为 nil 或空：所有可修改字段按请求体整体替换，未携带的字段被清空；
// mask 非空：仅复制 mask 中的字段，其余字段保持原值，空字段名视为未知字段。
func Resolve(existing, payload *model.Connection, mask []string) (*model.Connection, error) {
	// 1. 标识字段不可修改，与 mask 无关
	if payload.ConnID != "" && payload.ConnID != existing.ConnID {
		return nil, ErrIdentityMismatch
	}

	selected := mutableOrder
	if len(mask) > 0 {
		// 2. 逐个校验，返回第一个非法字段
		for _, name := range mask {
			if !MaskSelectable(name) {
				return nil, &UnknownOrImmutableFieldError{Field: name}
			}
		}
		selected = lo.Uniq(mask)
	}

	// 3/4. 复制选中字段
	merged := existing.Clone()
	src := payload.Clone()
	for _, name := range selected {
		copyField(name, merged, src)
	}
	return merged, nil
}
