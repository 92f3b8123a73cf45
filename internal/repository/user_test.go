package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (*UserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.gob")
	repo, err := NewUserRepository(NewStore(path))
	require.NoError(t, err)
	return repo, path
}

func TestHashPassword(t *testing.T) {
	// 同一密码摘要稳定，不同密码摘要不同
	assert.Equal(t, HashPassword("secret123"), HashPassword("secret123"))
	assert.NotEqual(t, HashPassword("secret123"), HashPassword("secret124"))

	// 固定 64 位十六进制摘要
	assert.Len(t, HashPassword(""), 64)
	assert.Len(t, HashPassword("任意密码"), 64)

	assert.True(t, CheckPassword("secret123", HashPassword("secret123")))
	assert.False(t, CheckPassword("secret124", HashPassword("secret123")))
}

func TestRegisterThenAuthenticate(t *testing.T) {
	repo, _ := newTestUserRepo(t)

	user, err := repo.Register("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// 正确密码登录成功
	got, err := repo.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// 密码错误
	_, err = repo.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrBadPassword)

	// 用户不存在
	_, err = repo.Authenticate("bob", "secret123")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestRegisterDuplicate(t *testing.T) {
	repo, _ := newTestUserRepo(t)

	_, err := repo.Register("alice", "secret123")
	require.NoError(t, err)

	// 重复注册失败，且不覆盖原有摘要
	_, err = repo.Register("alice", "another-password")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = repo.Authenticate("alice", "secret123")
	assert.NoError(t, err)
	_, err = repo.Authenticate("alice", "another-password")
	assert.ErrorIs(t, err, ErrBadPassword)
}

func TestUsernameCaseSensitive(t *testing.T) {
	repo, _ := newTestUserRepo(t)

	_, err := repo.Register("Alice", "secret123")
	require.NoError(t, err)

	// 用户名区分大小写
	_, err = repo.Authenticate("alice", "secret123")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = repo.Register("alice", "secret456")
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.Count())
}

func TestCredentialsPersistAcrossRestart(t *testing.T) {
	repo, path := newTestUserRepo(t)

	_, err := repo.Register("alice", "secret123")
	require.NoError(t, err)

	// 模拟重启：用同一文件重建仓库
	reloaded, err := NewUserRepository(NewStore(path))
	require.NoError(t, err)

	_, err = reloaded.Authenticate("alice", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count())
}

func TestStoreMissingFile(t *testing.T) {
	// 文件不存在不是错误，视为还没有用户
	store := NewStore(filepath.Join(t.TempDir(), "nonexistent.gob"))
	users, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, users)
}
