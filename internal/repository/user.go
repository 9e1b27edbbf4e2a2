// Package repository 定义了数据访问层的接口与通用错误，
// 具体实现位于 internal/infra/persistence 下。
package repository

import (
	"context"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByEmail 根据邮箱查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindAll 返回全部用户 (作者列表)。
	FindAll(ctx context.Context) ([]domain.User, error)

	// Save 保存用户信息。
	// 如果用户已存在 (基于 ID)，则更新；否则创建新用户。
	// 唯一约束冲突时返回 repository.ErrDuplicateEntry。
	Save(ctx context.Context, user *domain.User) error

	// AdjustPostCount 将用户的文章计数原子地增减 delta。
	// 必须在数据库端用单条 UPDATE 完成，避免并发下的读-改-写竞争。
	AdjustPostCount(ctx context.Context, id uint, delta int) error

	// AllAvatars 返回所有非空的头像文件名，供孤儿文件清理任务使用。
	AllAvatars(ctx context.Context) ([]string, error)
}
