package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	"github.com/KeyurAkbari007/Blog-App/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByID 实现根据文章 ID 查找文章 (填充作者)
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Preload("Creator").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// FindAll 实现返回全部文章，按最后更新时间倒序
func (r *GormPostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("updated_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all posts: %w", err)
	}
	return posts, nil
}

// FindByCategory 实现按分类查询文章
func (r *GormPostRepository) FindByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("category = ?", category).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find posts by category '%s': %w", category, err)
	}
	return posts, nil
}

// FindByCreator 实现按作者查询文章，按创建时间倒序 (新文章在前)
func (r *GormPostRepository) FindByCreator(ctx context.Context, creatorID uint) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find posts by creator %d: %w", creatorID, err)
	}
	return posts, nil
}

// Save 实现保存文章（创建或更新）
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	// Omit Creator 避免 Save 级联写入已 Preload 的作者记录
	err := r.db.WithContext(ctx).Omit("Creator").Save(post).Error
	if err != nil {
		return fmt.Errorf("gorm: save post (id: %d, title: %s): %w", post.ID, post.Title, err)
	}
	return nil
}

// Delete 实现删除文章
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}

// AllThumbnails 实现返回所有缩略图文件名
func (r *GormPostRepository) AllThumbnails(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Pluck("thumbnail", &names).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list thumbnails: %w", err)
	}
	return names, nil
}
