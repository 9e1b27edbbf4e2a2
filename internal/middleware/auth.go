// Package middleware 提供 Gin 中间件：会话鉴权和基于 Redis 的限流。
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/repository"
	"github.com/KeyurAkbari007/Blog-App/internal/service"
)

// SessionCookie 是携带会话 token 的 cookie 名称。
const SessionCookie = "session_token"

// Gin 上下文中存放认证结果的键
const (
	CtxUserIDKey = "user_id"
	CtxUserKey   = "current_user"
)

// Auth 返回一个 Gin 中间件，从 cookie 中提取会话 token，
// 校验通过后加载对应的用户 (密码已清除) 并放入请求上下文。
// 校验成功时该中间件是幂等且无副作用的。
func Auth(auth *service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	// 在创建中间件时就进行检查，避免运行时 panic
	if auth == nil {
		panic("AuthService cannot be nil for Auth middleware")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		// 1. 从 cookie 提取 token
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			logrus.Debug("Auth middleware: no session cookie")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			c.Abort()
			return
		}

		// 2. 校验 token
		userID, err := auth.VerifyToken(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// 3. 加载用户，token 有效但用户已被删除时同样视为未授权
		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logrus.WithField("user_id", userID).Warn("Auth middleware: token user no longer exists")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			} else {
				logrus.WithError(err).Error("Auth middleware: failed to load user")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			}
			c.Abort()
			return
		}
		user.Password = ""

		c.Set(CtxUserIDKey, userID)
		c.Set(CtxUserKey, user)
		logrus.WithField("user_id", userID).Debug("Auth middleware: user authenticated")

		c.Next()
	}
}
