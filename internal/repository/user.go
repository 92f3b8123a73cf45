package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/user/cinesight/internal/model"
)

// 认证相关错误
var (
	ErrDuplicateUser = errors.New("用户名已存在")
	ErrUnknownUser   = errors.New("用户不存在")
	ErrBadPassword   = errors.New("密码错误")
)

// UserRepository 用户仓库
// 凭据常驻内存，注册时整体写回平面文件；单进程单写者，互斥锁即可
type UserRepository struct {
	store *Store
	mu    sync.RWMutex
	users map[string]string // username -> sha256 摘要（区分大小写）
}

// NewUserRepository 创建用户仓库并加载已有凭据
func NewUserRepository(store *Store) (*UserRepository, error) {
	users, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &UserRepository{store: store, users: users}, nil
}

// HashPassword 计算密码摘要
// 注意：沿用既有凭据格式（无盐 sha256 hex），更换算法会导致老用户无法登录
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword 验证密码与摘要是否匹配
func CheckPassword(password, digest string) bool {
	return HashPassword(password) == digest
}

// Register 注册新用户并持久化
func (r *UserRepository) Register(username, password string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; exists {
		return nil, ErrDuplicateUser
	}

	digest := HashPassword(password)
	r.users[username] = digest

	if err := r.store.Save(r.users); err != nil {
		// 写盘失败则回滚内存状态，保证下次注册仍可重试
		delete(r.users, username)
		return nil, err
	}

	return &model.User{
		Username:     username,
		PasswordHash: digest,
		CreatedAt:    time.Now(),
	}, nil
}

// Authenticate 校验用户名和密码
func (r *UserRepository) Authenticate(username, password string) (*model.User, error) {
	r.mu.RLock()
	digest, exists := r.users[username]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrUnknownUser
	}
	if !CheckPassword(password, digest) {
		return nil, ErrBadPassword
	}

	return &model.User{
		Username:     username,
		PasswordHash: digest,
	}, nil
}

// Exists 用户名是否已被占用
func (r *UserRepository) Exists(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[username]
	return ok
}

// Count 获取用户总数
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
