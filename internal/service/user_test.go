package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	"github.com/KeyurAkbari007/Blog-App/internal/infra/storage"
	"github.com/KeyurAkbari007/Blog-App/internal/repository"
	"github.com/KeyurAkbari007/Blog-App/internal/repository/mocks"
	"github.com/KeyurAkbari007/Blog-App/internal/service"
)

func newUserService(t *testing.T) (*service.UserService, *mocks.UserRepository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	userRepo := new(mocks.UserRepository)
	return service.NewUserService(userRepo, store), userRepo, dir
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	svc, userRepo, _ := newUserService(t)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Name: "Old Name", Email: "old@example.com", Password: "hash"}
	userRepo.On("FindByID", ctx, uint(1)).Return(existing, nil).Once()
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		// 只有非空字段被替换
		return u.Name == "New Name" && u.Email == "old@example.com"
	})).Return(nil).Once()

	user, err := svc.UpdateProfile(ctx, 1, "New Name", "")

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "old@example.com", user.Email)
	assert.Empty(t, user.Password)

	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc, userRepo, _ := newUserService(t)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(9)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.UpdateProfile(ctx, 9, "Name", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_ListAuthors_StripsPassword(t *testing.T) {
	svc, userRepo, _ := newUserService(t)
	ctx := context.Background()

	userRepo.On("FindAll", ctx).Return([]domain.User{
		{ID: 1, Name: "a", Password: "hash-a"},
		{ID: 2, Name: "b", Password: "hash-b"},
	}, nil).Once()

	authors, err := svc.ListAuthors(ctx)

	require.NoError(t, err)
	require.Len(t, authors, 2)
	for _, a := range authors {
		assert.Empty(t, a.Password)
	}
}

func TestUserService_ChangeAvatar_NoFile(t *testing.T) {
	svc, userRepo, _ := newUserService(t)

	_, err := svc.ChangeAvatar(context.Background(), 1, nil, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoFile))
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_ChangeAvatar_TooLarge(t *testing.T) {
	svc, userRepo, dir := newUserService(t)
	ctx := context.Background()

	userRepo.On("FindByID", ctx, uint(1)).
		Return(&domain.User{ID: 1, Name: "a"}, nil).Once()

	big := make([]byte, 600_000) // 超过 500KB 上限
	_, err := svc.ChangeAvatar(ctx, 1, big, "face.jpg")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrFileTooLarge))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "超限时不应写任何文件")
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_ChangeAvatar_ReplacesOld(t *testing.T) {
	svc, userRepo, dir := newUserService(t)
	ctx := context.Background()

	oldAvatar := "old-face.jpg"
	require.NoError(t, os.WriteFile(filepath.Join(dir, oldAvatar), []byte("old"), 0o644))

	existing := &domain.User{ID: 1, Name: "a", Avatar: oldAvatar}
	userRepo.On("FindByID", ctx, uint(1)).Return(existing, nil).Once()
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Avatar != "" && u.Avatar != oldAvatar
	})).Return(nil).Once()

	user, err := svc.ChangeAvatar(ctx, 1, []byte("new-image"), "face.jpg")

	require.NoError(t, err)
	assert.NotEqual(t, oldAvatar, user.Avatar)

	// 新头像在磁盘上，旧头像已被删除
	entries, _ := os.ReadDir(dir)
	require.Len(t, entries, 1)
	assert.Equal(t, user.Avatar, entries[0].Name())

	userRepo.AssertExpectations(t)
}
