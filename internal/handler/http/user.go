package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	"github.com/KeyurAkbari007/Blog-App/internal/dto"
	"github.com/KeyurAkbari007/Blog-App/internal/middleware"
	"github.com/KeyurAkbari007/Blog-App/internal/service"
)

// UserHandler 封装用户相关的 HTTP 处理逻辑。
type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例。
func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// RegisterRequest 定义注册请求的结构体
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=191"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 处理用户注册请求
// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// LoginRequest 定义登录请求的结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求，成功时签发会话 cookie
// POST /api/users/auth
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: email and password required"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// token 同时放进 cookie 和响应体，30 天有效期
	maxAge := int(h.authService.TokenTTL().Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	SuccessResponse(c, http.StatusCreated, gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
		"posts":  user.Posts,
		"token":  token,
	})
}

// Logout 清除会话 cookie，无条件成功，可重复调用
// POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile 返回当前登录用户的资料
// GET /api/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// UpdateProfileRequest 定义资料更新请求；两个字段都可省略
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,max=191"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile 更新当前登录用户的资料
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Authors 返回全部作者
// GET /api/users/authors
func (h *UserHandler) Authors(c *gin.Context) {
	users, err := h.userService.ListAuthors(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewAuthors(users))
}

// ChangeAvatar 替换当前登录用户的头像
// POST /api/users/change-avatar (multipart, 字段名 avatar)
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}

	content, name, err := readUpload(c, "avatar")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "failed to read avatar upload")
		return
	}
	if content == nil {
		ErrorResponse(c, http.StatusBadRequest, "no avatar selected")
		return
	}

	user, err := h.userService.ChangeAvatar(c.Request.Context(), userID, content, name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, dto.NewAuthor(user))
}

// --- 上下文辅助函数 ---

// currentUserID 从 Gin 上下文取出鉴权中间件写入的用户 ID。
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.CtxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// currentUser 从 Gin 上下文取出鉴权中间件加载的用户。
func currentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(middleware.CtxUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
