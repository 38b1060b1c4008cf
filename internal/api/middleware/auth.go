package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"conn-hub/internal/pkg/auth"
	"conn-hub/internal/pkg/jwt"
	"conn-hub/pkg/constants"
	"conn-hub/pkg/responses"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.AbortWithError(c, responses.ErrUnauthorized)
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.AbortWithError(c, responses.Unauthorized("Authorization header must use the Bearer scheme"))
			return
		}

		// 验证Token，过期及类型错误均为 401
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			responses.AbortWithError(c, err)
			return
		}

		// 将用户信息存入context
		c.Set(constants.ContextKeyUser, claims)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyRoles, claims.Roles)

		c.Next()
	}
}

// RequirePermission 校验当前用户角色是否拥有 perm，须在 AuthMiddleware 之后使用
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Allow(c.GetStringSlice(constants.ContextKeyRoles), perm) {
			responses.AbortWithError(c, responses.ErrForbidden)
			return
		}
		c.Next()
	}
}
