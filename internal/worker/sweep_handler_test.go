package worker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeyurAkbari007/Blog-App/internal/repository/mocks"
	"github.com/KeyurAkbari007/Blog-App/internal/tasks"
	"github.com/KeyurAkbari007/Blog-App/internal/worker"
)

func writeFileAged(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	if age > 0 {
		old := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, old, old))
	}
}

func TestUploadSweepHandler_RemovesOnlyStaleOrphans(t *testing.T) {
	dir := t.TempDir()

	// 被引用的旧文件、无引用的旧文件、无引用的新文件
	writeFileAged(t, dir, "avatar-in-use.png", 48*time.Hour)
	writeFileAged(t, dir, "thumb-in-use.png", 48*time.Hour)
	writeFileAged(t, dir, "stale-orphan.png", 48*time.Hour)
	writeFileAged(t, dir, "fresh-orphan.png", 0)

	userRepo := new(mocks.UserRepository)
	postRepo := new(mocks.PostRepository)
	userRepo.On("AllAvatars", context.Background()).Return([]string{"avatar-in-use.png"}, nil).Once()
	postRepo.On("AllThumbnails", context.Background()).Return([]string{"thumb-in-use.png"}, nil).Once()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	handler := worker.NewUploadSweepHandler(dir, userRepo, postRepo, logger)

	payload, err := tasks.NewUploadSweepTask(int64((24 * time.Hour).Seconds()))
	require.NoError(t, err)
	task := asynq.NewTask(tasks.TypeUploadSweep, payload)

	require.NoError(t, handler.ProcessTask(context.Background(), task))

	// 只有超过宽限期的孤儿文件被删除
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"avatar-in-use.png", "thumb-in-use.png", "fresh-orphan.png"}, names)

	userRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestUploadSweepHandler_RejectsBadPayload(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	postRepo := new(mocks.PostRepository)
	handler := worker.NewUploadSweepHandler(t.TempDir(), userRepo, postRepo, logrus.New())

	task := asynq.NewTask(tasks.TypeUploadSweep, []byte("not-json"))
	assert.Error(t, handler.ProcessTask(context.Background(), task))
}
