package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/service"
)

// HandleServiceError 将服务层错误映射为 HTTP 状态码。
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrRegistrationFailed),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrNoFile),
		errors.Is(err, service.ErrFileTooLarge):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoFieldsProvided),
		errors.Is(err, service.ErrDescriptionTooShort):
		ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		// 未预期的内部错误只记录细节，对客户端返回通用信息
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
