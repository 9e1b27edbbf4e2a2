package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	"github.com/KeyurAkbari007/Blog-App/internal/infra/storage"
	"github.com/KeyurAkbari007/Blog-App/internal/repository"
)

const (
	// MaxThumbnailSize 是文章缩略图的大小上限 (2MB)。
	MaxThumbnailSize = 2_000_000
	// MinDescriptionLen 是编辑文章时描述的最短长度。
	MinDescriptionLen = 12
)

// PostService 负责文章的增删改查以及缩略图文件的生命周期。
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	files    storage.Store
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, files storage.Store) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for PostService")
	}
	if files == nil {
		panic("file store cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, userRepo: userRepo, files: files}
}

// Create 创建一篇新文章。
// 标题、分类、描述和缩略图文件全部必填；任何校验失败都发生在写文件之前，
// 不会留下孤儿文件。成功后作者的文章计数原子地加一。
func (s *PostService) Create(ctx context.Context, creatorID uint, title, category, description string, content []byte, originalName string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"creator_id": creatorID, "title": title})

	if title == "" || category == "" || description == "" {
		return nil, ErrMissingFields
	}
	if len(content) == 0 || originalName == "" {
		return nil, ErrMissingFields
	}
	if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if int64(len(content)) > MaxThumbnailSize {
		return nil, ErrFileTooLarge
	}

	thumbnail, err := s.files.Save(content, originalName, MaxThumbnailSize)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return nil, ErrFileTooLarge
		}
		logCtx.WithError(err).Error("Failed to save thumbnail")
		return nil, ErrInternalServer
	}

	post := &domain.Post{
		Title:       title,
		Description: description,
		Category:    category,
		Thumbnail:   thumbnail,
		CreatorID:   creatorID,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		// 记录没落库，回收刚写入的文件
		if rmErr := s.files.Remove(thumbnail); rmErr != nil {
			logCtx.WithError(rmErr).Warn("Failed to clean up thumbnail after save failure")
		}
		logCtx.WithError(err).Error("Failed to save post")
		return nil, ErrInternalServer
	}

	if err := s.userRepo.AdjustPostCount(ctx, creatorID, 1); err != nil {
		// 计数失败不回滚文章，只记录；清理任务和按需重算可以纠偏
		logCtx.WithError(err).Warn("Failed to increment author post count")
	}

	logCtx.WithField("post_id", post.ID).Info("Post created")
	return post, nil
}

// GetAll 返回全部文章，最近更新的在前。
func (s *PostService) GetAll(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// GetByID 返回指定文章。
func (s *PostService) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Failed to load post")
		return nil, ErrInternalServer
	}
	return post, nil
}

// GetByCategory 返回指定分类下的文章。
func (s *PostService) GetByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	posts, err := s.postRepo.FindByCategory(ctx, category)
	if err != nil {
		logrus.WithError(err).WithField("category", category).Error("Failed to list posts by category")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// GetByCreator 返回指定作者的文章，新文章在前。
func (s *PostService) GetByCreator(ctx context.Context, creatorID uint) ([]domain.Post, error) {
	posts, err := s.postRepo.FindByCreator(ctx, creatorID)
	if err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).Error("Failed to list posts by creator")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// Edit 更新一篇文章，只有作者本人可以编辑。
// title/description/category 至少提供一个，只换缩略图不算有效编辑；
// 提供了新缩略图时，顺序是：写入新文件 -> 更新记录 -> 尽力删除旧文件
// (失败只记录日志)。
func (s *PostService) Edit(ctx context.Context, id, callerID uint, title, description, category string, content []byte, originalName string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "caller_id": callerID})

	if title == "" && description == "" && category == "" {
		return nil, ErrNoFieldsProvided
	}
	if description != "" && len(description) < MinDescriptionLen {
		return nil, ErrDescriptionTooShort
	}
	if category != "" && !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to load post for edit")
		return nil, ErrInternalServer
	}
	if post.CreatorID != callerID {
		logCtx.Warn("Edit rejected: caller is not the creator")
		return nil, ErrForbidden
	}

	if title != "" {
		post.Title = title
	}
	if description != "" {
		post.Description = description
	}
	if category != "" {
		post.Category = category
	}

	oldThumbnail := ""
	if len(content) > 0 {
		if int64(len(content)) > MaxThumbnailSize {
			return nil, ErrFileTooLarge
		}
		newName, err := s.files.Save(content, originalName, MaxThumbnailSize)
		if err != nil {
			if errors.Is(err, storage.ErrFileTooLarge) {
				return nil, ErrFileTooLarge
			}
			logCtx.WithError(err).Error("Failed to save replacement thumbnail")
			return nil, ErrInternalServer
		}
		oldThumbnail = post.Thumbnail
		post.Thumbnail = newName
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		if post.Thumbnail != oldThumbnail && oldThumbnail != "" {
			if rmErr := s.files.Remove(post.Thumbnail); rmErr != nil {
				logCtx.WithError(rmErr).Warn("Failed to clean up thumbnail after save failure")
			}
		}
		logCtx.WithError(err).Error("Failed to save post edit")
		return nil, ErrInternalServer
	}

	// 记录已指向新文件，旧文件删不掉也只是留下孤儿，由清理任务兜底
	if oldThumbnail != "" {
		if err := s.files.Remove(oldThumbnail); err != nil {
			logCtx.WithError(err).WithField("thumbnail", oldThumbnail).Warn("Failed to delete superseded thumbnail")
		}
	}

	logCtx.Info("Post updated")
	return post, nil
}

// Delete 删除一篇文章，只有作者本人可以删除。
// 成功后作者的文章计数原子地减一，缩略图文件尽力删除。
func (s *PostService) Delete(ctx context.Context, id, callerID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "caller_id": callerID})

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to load post for delete")
		return ErrInternalServer
	}
	if post.CreatorID != callerID {
		logCtx.Warn("Delete rejected: caller is not the creator")
		return ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to delete post")
		return ErrInternalServer
	}

	if err := s.userRepo.AdjustPostCount(ctx, post.CreatorID, -1); err != nil {
		logCtx.WithError(err).Warn("Failed to decrement author post count")
	}

	if err := s.files.Remove(post.Thumbnail); err != nil {
		logCtx.WithError(err).WithField("thumbnail", post.Thumbnail).Warn("Failed to delete thumbnail of removed post")
	}

	logCtx.Info("Post deleted")
	return nil
}
