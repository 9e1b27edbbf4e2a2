package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	"github.com/KeyurAkbari007/Blog-App/internal/infra/storage"
	"github.com/KeyurAkbari007/Blog-App/internal/repository"
)

// MaxAvatarSize 是头像上传的大小上限 (500KB)。
const MaxAvatarSize = 500_000

// UserService 负责用户资料和头像相关的业务逻辑。
type UserService struct {
	userRepo repository.UserRepository
	files    storage.Store
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, files storage.Store) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	if files == nil {
		panic("file store cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo, files: files}
}

// UpdateProfile 更新用户资料。
// name/email 只有在提供了非空值时才会被替换，否则保持原值。
func (s *UserService) UpdateProfile(ctx context.Context, id uint, name, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to load user for profile update")
		return nil, ErrInternalServer
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrRegistrationFailed
		}
		logrus.WithError(err).WithField("user_id", id).Error("Failed to save profile update")
		return nil, ErrInternalServer
	}

	user.Password = ""
	return user, nil
}

// ListAuthors 返回全部作者。
func (s *UserService) ListAuthors(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list authors")
		return nil, ErrInternalServer
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// ChangeAvatar 替换用户头像。
// 顺序是：写入新文件 -> 更新记录 -> 尽力删除旧文件。
// 旧文件删除失败只记录日志，不影响用户可见的结果。
func (s *UserService) ChangeAvatar(ctx context.Context, id uint, content []byte, originalName string) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	if len(content) == 0 || originalName == "" {
		return nil, ErrNoFile
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load user for avatar change")
		return nil, ErrInternalServer
	}

	newName, err := s.files.Save(content, originalName, MaxAvatarSize)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return nil, ErrFileTooLarge
		}
		logCtx.WithError(err).Error("Failed to save new avatar")
		return nil, ErrInternalServer
	}

	oldAvatar := user.Avatar
	user.Avatar = newName
	if err := s.userRepo.Save(ctx, user); err != nil {
		// 记录更新失败，回收刚写入的文件
		if rmErr := s.files.Remove(newName); rmErr != nil {
			logCtx.WithError(rmErr).Warn("Failed to clean up avatar after save failure")
		}
		logCtx.WithError(err).Error("Failed to persist new avatar")
		return nil, ErrInternalServer
	}

	if oldAvatar != "" {
		if err := s.files.Remove(oldAvatar); err != nil {
			logCtx.WithError(err).WithField("avatar", oldAvatar).Warn("Failed to delete superseded avatar")
		}
	}

	logCtx.WithField("avatar", newName).Info("Avatar changed")
	user.Password = ""
	return user, nil
}
