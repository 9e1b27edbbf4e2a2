package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/KeyurAkbari007/Blog-App/internal/repository"
	"github.com/KeyurAkbari007/Blog-App/internal/tasks"
)

// UploadSweepHandler 处理孤儿上传文件的清理任务。
// 上传目录中既不是任何用户头像、也不是任何文章缩略图、
// 且已经超过宽限期的文件会被删除。
type UploadSweepHandler struct {
	uploadDir string
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	log       *logrus.Entry
}

// NewUploadSweepHandler 创建 Handler 实例。
func NewUploadSweepHandler(uploadDir string, userRepo repository.UserRepository, postRepo repository.PostRepository, logger *logrus.Logger) *UploadSweepHandler {
	if uploadDir == "" {
		panic("upload directory cannot be empty for UploadSweepHandler")
	}
	if userRepo == nil || postRepo == nil {
		panic("repositories cannot be nil for UploadSweepHandler")
	}
	return &UploadSweepHandler{
		uploadDir: uploadDir,
		userRepo:  userRepo,
		postRepo:  postRepo,
		log:       logger.WithField("component", "upload_sweep"),
	}
}

// ProcessTask 实现 asynq 的任务处理接口。
func (h *UploadSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload tasks.UploadSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.WithError(err).Error("Invalid sweep task payload")
		return err
	}
	grace := time.Duration(payload.GraceSeconds) * time.Second
	if grace <= 0 {
		grace = 24 * time.Hour
	}

	removed, kept, err := h.sweep(ctx, grace)
	if err != nil {
		return err
	}
	h.log.WithFields(logrus.Fields{"removed": removed, "kept": kept}).Info("Upload sweep completed")
	return nil
}

// sweep 执行一次清理，返回删除和保留的文件数。
func (h *UploadSweepHandler) sweep(ctx context.Context, grace time.Duration) (removed, kept int, err error) {
	referenced, err := h.referencedFilenames(ctx)
	if err != nil {
		return 0, 0, err
	}

	entries, err := os.ReadDir(h.uploadDir)
	if err != nil {
		h.log.WithError(err).Error("Failed to read upload directory")
		return 0, 0, err
	}

	cutoff := time.Now().Add(-grace)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if referenced[name] {
			kept++
			continue
		}
		info, err := entry.Info()
		if err != nil {
			h.log.WithError(err).WithField("file", name).Warn("Failed to stat upload entry")
			kept++
			continue
		}
		// 宽限期内的新文件可能属于尚未落库的请求，跳过
		if info.ModTime().After(cutoff) {
			kept++
			continue
		}
		if err := os.Remove(filepath.Join(h.uploadDir, name)); err != nil {
			h.log.WithError(err).WithField("file", name).Warn("Failed to remove orphaned upload")
			kept++
			continue
		}
		h.log.WithField("file", name).Info("Removed orphaned upload")
		removed++
	}
	return removed, kept, nil
}

// referencedFilenames 收集数据库中仍被引用的全部文件名。
func (h *UploadSweepHandler) referencedFilenames(ctx context.Context) (map[string]bool, error) {
	avatars, err := h.userRepo.AllAvatars(ctx)
	if err != nil {
		h.log.WithError(err).Error("Failed to list referenced avatars")
		return nil, err
	}
	thumbnails, err := h.postRepo.AllThumbnails(ctx)
	if err != nil {
		h.log.WithError(err).Error("Failed to list referenced thumbnails")
		return nil, err
	}

	referenced := make(map[string]bool, len(avatars)+len(thumbnails))
	for _, name := range avatars {
		referenced[name] = true
	}
	for _, name := range thumbnails {
		referenced[name] = true
	}
	return referenced, nil
}
