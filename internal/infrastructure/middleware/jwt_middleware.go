// Package middleware 提供 gin 中间件
package middleware

import (
	"net/http"
	"strings"

	"echo_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth JWT 认证中间件
// 验证 Bearer Access Token 并把 user_id 写入上下文
// 纯校验，不做任何状态写入；在线状态由心跳接口维护
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "authorization header must be a Bearer token")
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "token expired or invalid")
			return
		}

		// Refresh Token 不能当 Access Token 用
		if claims.Subject != "access_token" {
			abortUnauthorized(c, "an access token is required")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// abortUnauthorized 写出 401 并终止处理链
// 响应体与 handler 层的错误契约一致
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
