package auth

import (
	"strings"

	"github.com/samber/lo"
)

// Role 内置角色
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOp     Role = "op"
	RoleViewer Role = "viewer"
)

// Permission 内置权限，格式 resource:action
type Permission string

const (
	PermConnectionCreate Permission = "connection:create"
	PermConnectionRead   Permission = "connection:read"
	PermConnectionEdit   Permission = "connection:edit"
	PermConnectionDelete Permission = "connection:delete"
	PermAuditLogRead     Permission = "audit_log:read"
)

// RolePermissions 每个角色拥有的权限集合
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		"*",
	},
	RoleOp: {
		"connection:*",
	},
	RoleViewer: {
		"*:read",
	},
}

// Allow 判断一组角色是否包含所需权限，支持通配符
func Allow(roles []string, need Permission) bool {
	permissions := collectPermissions(roles)
	return lo.SomeBy(permissions, func(p Permission) bool {
		return match(p, need)
	})
}

func collectPermissions(roles []string) []Permission {
	return lo.Uniq(lo.FlatMap(roles, func(r string, _ int) []Permission {
		return RolePermissions[Role(r)]
	}))
}

// match 按段匹配，"*" 段匹配任意单段，末尾的 "*" 匹配剩余所有段
func match(have, need Permission) bool {
	if have == "*" || have == need {
		return true
	}

	haveParts := strings.Split(string(have), ":")
	needParts := strings.Split(string(need), ":")

	for i, part := range haveParts {
		if part == "*" && i == len(haveParts)-1 {
			return len(needParts) >= len(haveParts)
		}
		if i >= len(needParts) {
			return false
		}
		if part != "*" && part != needParts[i] {
			return false
		}
	}
	return len(haveParts) == len(needParts)
}
