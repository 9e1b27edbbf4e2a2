package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
)

// PostRepository 是 repository.PostRepository 的 Mock 实现
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*domain.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) FindByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	args := m.Called(ctx, category)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) FindByCreator(ctx context.Context, creatorID uint) ([]domain.Post, error) {
	args := m.Called(ctx, creatorID)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepository) AllThumbnails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}
