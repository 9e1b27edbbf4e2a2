package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrRegistrationFailed   = errors.New("registration failed: email already exists")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrForbidden            = errors.New("you are not authorized to modify this post")
	ErrInternalServer       = errors.New("internal server error")

	// 输入校验类错误
	ErrMissingFields       = errors.New("please provide all fields")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrNoFieldsProvided    = errors.New("please provide at least one field")
	ErrDescriptionTooShort = errors.New("description should be at least 12 characters")
	ErrNoFile              = errors.New("no file provided")
	ErrFileTooLarge        = errors.New("file exceeds the allowed size")
)
