package repository

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store 用户凭据的平面文件存储
// 文件内容是 gob 序列化的 username -> 密码摘要 映射，整体读取、整体写入
type Store struct {
	path string
}

// NewStore 创建凭据存储
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load 读取全部凭据
// 文件不存在视为"还没有用户"，返回空映射而不是错误
func (s *Store) Load() (map[string]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("打开凭据文件失败: %w", err)
	}
	defer f.Close()

	users := map[string]string{}
	if err := gob.NewDecoder(f).Decode(&users); err != nil {
		return nil, fmt.Errorf("解析凭据文件失败: %w", err)
	}
	return users, nil
}

// Save 整体覆盖写入全部凭据
// 先写临时文件再改名，避免写一半进程退出导致文件损坏
func (s *Store) Save(users map[string]string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(users); err != nil {
		tmp.Close()
		return fmt.Errorf("写入凭据失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
