package repository

import (
	"context"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
)

// PostRepository 定义了文章数据的存储和检索操作。
// 所有的读操作都会填充 Post.Creator (仅 id/name/avatar 被序列化)。
type PostRepository interface {
	// FindByID 根据文章 ID 查找文章。
	// 如果文章不存在，应返回 repository.ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// FindAll 返回全部文章，按最后更新时间倒序。
	FindAll(ctx context.Context) ([]domain.Post, error)

	// FindByCategory 返回指定分类下的全部文章。
	FindByCategory(ctx context.Context, category string) ([]domain.Post, error)

	// FindByCreator 返回指定作者的全部文章，按创建时间倒序。
	FindByCreator(ctx context.Context, creatorID uint) ([]domain.Post, error)

	// Save 保存文章 (基于 ID 创建或更新)。
	Save(ctx context.Context, post *domain.Post) error

	// Delete 删除指定文章。文章不存在时返回 repository.ErrPostNotFound。
	Delete(ctx context.Context, id uint) error

	// AllThumbnails 返回所有缩略图文件名，供孤儿文件清理任务使用。
	AllThumbnails(ctx context.Context) ([]string, error)
}
