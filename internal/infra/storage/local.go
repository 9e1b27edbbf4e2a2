// Package storage 实现上传文件的本地存储适配器。
// 存储根目录在构造时注入，所有文件名都限制在该目录内。
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrFileTooLarge 表示上传内容超过了调用方给定的大小上限
	ErrFileTooLarge = errors.New("storage: file exceeds size limit")
	// ErrFileNotFound 表示要删除的文件不存在
	ErrFileNotFound = errors.New("storage: file not found")
	// ErrInvalidName 表示文件名非法 (空或试图跳出存储目录)
	ErrInvalidName = errors.New("storage: invalid file name")
)

// Store 是上传文件的能力接口：保存并生成唯一文件名，删除已有文件。
type Store interface {
	// Save 校验大小后将 content 写入存储，返回生成的唯一文件名。
	// 超限时返回 ErrFileTooLarge，且不写任何内容。
	Save(content []byte, originalName string, maxSize int64) (string, error)

	// Remove 删除指定文件。文件不存在时返回 ErrFileNotFound。
	Remove(name string) error
}

// LocalStore 将文件保存到本地磁盘的一个固定目录下。
type LocalStore struct {
	root string
}

// NewLocalStore 创建 LocalStore，目录不存在时自动创建。
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage: root directory must be provided")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root directory '%s': %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// Root 返回存储根目录，用于静态文件服务和清理任务。
func (s *LocalStore) Root() string {
	return s.root
}

// Save 实现 Store.Save。
// 生成的文件名为 <原始名去扩展名><uuid><扩展名>，避免上传同名文件互相覆盖。
func (s *LocalStore) Save(content []byte, originalName string, maxSize int64) (string, error) {
	if originalName == "" {
		return "", ErrInvalidName
	}
	if int64(len(content)) > maxSize {
		return "", ErrFileTooLarge
	}

	// 只取 base，防止客户端提供的文件名携带路径
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(s.root, name), content, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file '%s': %w", name, err)
	}
	return name, nil
}

// Remove 实现 Store.Remove。
func (s *LocalStore) Remove(name string) error {
	// 拒绝空名以及任何包含路径成分的名字
	if name == "" || name != filepath.Base(name) {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("storage: remove file '%s': %w", name, err)
	}
	return nil
}
