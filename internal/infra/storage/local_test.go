package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeyurAkbari007/Blog-App/internal/infra/storage"
)

func TestLocalStore_SaveGeneratesUniqueName(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name1, err := store.Save([]byte("one"), "cover.png", 1000)
	require.NoError(t, err)
	name2, err := store.Save([]byte("two"), "cover.png", 1000)
	require.NoError(t, err)

	// 同名上传互不覆盖
	assert.NotEqual(t, name1, name2)
	assert.True(t, strings.HasPrefix(name1, "cover"))
	assert.Equal(t, ".png", filepath.Ext(name1))

	content, err := os.ReadFile(filepath.Join(store.Root(), name1))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), content)
}

func TestLocalStore_SaveRejectsOversize(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(make([]byte, 11), "big.bin", 10)
	assert.True(t, errors.Is(err, storage.ErrFileTooLarge))

	// 上限校验在写之前，目录保持为空
	entries, _ := os.ReadDir(store.Root())
	assert.Empty(t, entries)
}

func TestLocalStore_SaveStripsClientPath(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	// 客户端提供的文件名可能带路径，只保留 base
	name, err := store.Save([]byte("x"), "../../etc/passwd.txt", 1000)
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.True(t, strings.HasPrefix(name, "passwd"))
}

func TestLocalStore_Remove(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save([]byte("x"), "a.txt", 100)
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, statErr := os.Stat(filepath.Join(store.Root(), name))
	assert.True(t, os.IsNotExist(statErr))

	// 再删一次是 NotFound
	assert.True(t, errors.Is(store.Remove(name), storage.ErrFileNotFound))

	// 路径穿越被拒绝
	assert.True(t, errors.Is(store.Remove("../a.txt"), storage.ErrInvalidName))
	assert.True(t, errors.Is(store.Remove(""), storage.ErrInvalidName))
}
