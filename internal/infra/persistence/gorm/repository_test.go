package gormpersistence_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
	gormpersistence "github.com/KeyurAkbari007/Blog-App/internal/infra/persistence/gorm"
	"github.com/KeyurAkbari007/Blog-App/internal/repository"
)

// newTestDB 打开一个共享的内存 SQLite 并迁移表结构。
// 限制为单连接，保证并发用例在一个连接上串行执行而不触发锁错误。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}))
	return db
}

func TestGormUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Name: "a", Email: "same@example.com", Password: "hash"}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.User{Name: "b", Email: "same@example.com", Password: "hash"}
	err := repo.Save(ctx, second)

	// 唯一约束冲突被映射为仓库层错误
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEntry))

	// 第一条记录不受影响
	got, err := repo.FindByEmail(ctx, "same@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "a", got.Name)
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestGormUserRepository_AdjustPostCount_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Name: "a", Email: "a@example.com", Password: "hash"}
	require.NoError(t, repo.Save(ctx, user))

	// 并发增减在数据库端用单条 UPDATE 完成，最终计数必须精确
	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AdjustPostCount(ctx, user.ID, 1))
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.Posts)

	require.NoError(t, repo.AdjustPostCount(ctx, user.ID, -1))
	got, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, workers-1, got.Posts)
}

func TestGormUserRepository_AdjustPostCount_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)

	err := repo.AdjustPostCount(context.Background(), 12345, 1)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestGormPostRepository_FindAll_OrderAndCreator(t *testing.T) {
	db := newTestDB(t)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Name: "author", Email: "author@example.com", Password: "hash", Avatar: "face.png"}
	require.NoError(t, userRepo.Save(ctx, author))

	older := &domain.Post{Title: "older", Description: "first description", Category: "Travel", Thumbnail: "t1.png", CreatorID: author.ID}
	require.NoError(t, postRepo.Save(ctx, older))
	newer := &domain.Post{Title: "newer", Description: "second description", Category: "Technology", Thumbnail: "t2.png", CreatorID: author.ID}
	require.NoError(t, postRepo.Save(ctx, newer))

	// 触碰 older，让它的 updated_at 变成最新
	older.Title = "older touched"
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, postRepo.Save(ctx, older))

	posts, err := postRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// 最近更新的在前
	assert.Equal(t, "older touched", posts[0].Title)
	// 作者被 Preload
	require.NotNil(t, posts[0].Creator)
	assert.Equal(t, "author", posts[0].Creator.Name)
	assert.Equal(t, "face.png", posts[0].Creator.Avatar)
}

func TestGormPostRepository_FindByCreator_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Name: "a", Email: "a@example.com", Password: "hash"}
	require.NoError(t, userRepo.Save(ctx, author))
	other := &domain.User{Name: "b", Email: "b@example.com", Password: "hash"}
	require.NoError(t, userRepo.Save(ctx, other))

	first := &domain.Post{Title: "first", Description: "d", Category: "Music", Thumbnail: "1.png", CreatorID: author.ID,
		CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, postRepo.Save(ctx, first))
	second := &domain.Post{Title: "second", Description: "d", Category: "Music", Thumbnail: "2.png", CreatorID: author.ID}
	require.NoError(t, postRepo.Save(ctx, second))
	foreign := &domain.Post{Title: "foreign", Description: "d", Category: "Music", Thumbnail: "3.png", CreatorID: other.ID}
	require.NoError(t, postRepo.Save(ctx, foreign))

	posts, err := postRepo.FindByCreator(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Title)
	assert.Equal(t, "first", posts[1].Title)
}

func TestGormPostRepository_DeleteAndNotFound(t *testing.T) {
	db := newTestDB(t)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Name: "a", Email: "a@example.com", Password: "hash"}
	require.NoError(t, userRepo.Save(ctx, author))
	post := &domain.Post{Title: "t", Description: "d", Category: "Art", Thumbnail: "x.png", CreatorID: author.ID}
	require.NoError(t, postRepo.Save(ctx, post))

	require.NoError(t, postRepo.Delete(ctx, post.ID))
	assert.True(t, errors.Is(postRepo.Delete(ctx, post.ID), repository.ErrPostNotFound))

	_, err := postRepo.FindByID(ctx, post.ID)
	assert.True(t, errors.Is(err, repository.ErrPostNotFound))
}

func TestGormPostRepository_AllThumbnails(t *testing.T) {
	db := newTestDB(t)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Name: "a", Email: "a@example.com", Password: "hash"}
	require.NoError(t, userRepo.Save(ctx, author))
	require.NoError(t, postRepo.Save(ctx, &domain.Post{Title: "1", Description: "d", Category: "Art", Thumbnail: "one.png", CreatorID: author.ID}))
	require.NoError(t, postRepo.Save(ctx, &domain.Post{Title: "2", Description: "d", Category: "Art", Thumbnail: "two.png", CreatorID: author.ID}))

	names, err := postRepo.AllThumbnails(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.png", "two.png"}, names)
}
