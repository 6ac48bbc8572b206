package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/internal/pkg/jwt"
	"github.com/fitforge/gym_go_server/internal/pkg/response"
)

const StaffIDKey = "staff_id"

// Auth JWT 认证中间件，Token 放在 Authorization: Bearer <token>
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "缺少认证信息")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AuthError(c, "认证格式不正确")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			response.AuthError(c, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(StaffIDKey, claims.StaffID)
		c.Next()
	}
}

// GetStaffID 从上下文取当前登录员工 ID
func GetStaffID(c *gin.Context) int64 {
	if v, ok := c.Get(StaffIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
