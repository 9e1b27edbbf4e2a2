package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/dto"
	"github.com/KeyurAkbari007/Blog-App/internal/service"
)

// PostHandler 封装文章相关的 HTTP 处理逻辑。
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例。
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create 创建文章
// POST /api/posts (multipart: title/category/description + thumbnail)
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}

	title := c.PostForm("title")
	category := c.PostForm("category")
	description := c.PostForm("description")

	content, name, err := readUpload(c, "thumbnail")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "failed to read thumbnail upload")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, title, category, description, content, name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, dto.NewPostView(post))
}

// GetAll 返回全部文章，最近更新的在前
// GET /api/posts
func (h *PostHandler) GetAll(c *gin.Context) {
	posts, err := h.postService.GetAll(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostViews(posts))
}

// GetByID 返回单篇文章
// GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := lookupID(c, "post not found")
	if !ok {
		return
	}
	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostView(post))
}

// GetByCategory 返回指定分类下的文章
// GET /api/posts/categories/:category
func (h *PostHandler) GetByCategory(c *gin.Context) {
	posts, err := h.postService.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostViews(posts))
}

// MyPosts 返回当前登录用户的文章
// GET /api/posts/userPosts
func (h *PostHandler) MyPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}
	posts, err := h.postService.GetByCreator(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostViews(posts))
}

// ByAuthor 返回任意作者的文章
// GET /api/posts/users/:id
func (h *PostHandler) ByAuthor(c *gin.Context) {
	id, ok := lookupID(c, "user not found")
	if !ok {
		return
	}
	posts, err := h.postService.GetByCreator(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostViews(posts))
}

// Edit 更新文章 (仅作者本人)
// PATCH /api/posts/:id (multipart, 所有字段可选但至少一个)
func (h *PostHandler) Edit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")

	content, name, err := readUpload(c, "thumbnail")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "failed to read thumbnail upload")
		return
	}

	post, err := h.postService.Edit(c.Request.Context(), id, userID, title, description, category, content, name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, dto.NewPostView(post))
}

// Delete 删除文章 (仅作者本人)
// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "no token")
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id, userID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

// --- 辅助函数 ---

// paramID 解析路径参数 :id，非法时直接写 422 响应。
// 用于写操作 (PATCH/DELETE)，调用方传了坏 id 属于请求格式错误。
func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusUnprocessableEntity, "please provide a valid id")
		return 0, false
	}
	return uint(id), true
}

// lookupID 解析公开查询路由上的 :id，解析不了的 id 等同于资源不存在，写 404。
func lookupID(c *gin.Context, message string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, http.StatusNotFound, message)
		return 0, false
	}
	return uint(id), true
}

// readUpload 读取 multipart 表单中的上传文件。
// 文件缺失不算错误，返回 (nil, "", nil)，由服务层决定该字段是否必填。
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// 包括普通非 multipart 请求在内，一律视为未提供文件
		return nil, "", nil
	}
	f, err := fh.Open()
	if err != nil {
		logrus.WithError(err).WithField("field", field).Warn("Failed to open uploaded file")
		return nil, "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		logrus.WithError(err).WithField("field", field).Warn("Failed to read uploaded file")
		return nil, "", err
	}
	return content, fh.Filename, nil
}
