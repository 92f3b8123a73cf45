package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/user/cinesight/internal/model"
)

// ErrInvalidRating 评分超出 1-10 范围
var ErrInvalidRating = errors.New("评分必须在 1 到 10 之间")

// Ledger 单个会话的评分账本
// 同一部电影重复提交时覆盖旧值，但保留首次提交时的位置
type Ledger struct {
	mu      sync.Mutex
	order   []string
	entries map[string]model.RatingEntry
}

// NewLedger 创建空账本
func NewLedger() *Ledger {
	return &Ledger{entries: map[string]model.RatingEntry{}}
}

// Submit 记录一条评分，重复提交覆盖旧值
func (l *Ledger) Submit(title string, value int, review string) error {
	if value < 1 || value > 10 {
		return ErrInvalidRating
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[title]; !exists {
		l.order = append(l.order, title)
	}
	l.entries[title] = model.RatingEntry{
		MovieTitle:  title,
		Value:       value,
		Review:      review,
		SubmittedAt: time.Now(),
	}
	return nil
}

// Get 查询某部电影的评分
func (l *Ledger) Get(title string) (model.RatingEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[title]
	return entry, ok
}

// List 按提交顺序返回全部评分
func (l *Ledger) List() []model.RatingEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.RatingEntry, 0, len(l.order))
	for _, title := range l.order {
		out = append(out, l.entries[title])
	}
	return out
}

// Len 账本条数
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// LedgerRegistry 评分账本注册表
// 账本只存在于内存中，按会话 ID 索引，过期自动回收，从不落盘
type LedgerRegistry struct {
	ledgers *cache.Cache
}

// NewLedgerRegistry 创建注册表，ttl 是账本闲置多久后被回收
func NewLedgerRegistry(ttl time.Duration) *LedgerRegistry {
	return &LedgerRegistry{
		ledgers: cache.New(ttl, 30*time.Minute),
	}
}

// Create 为一次登录分配新账本，返回账本 ID
func (r *LedgerRegistry) Create() string {
	id := uuid.NewString()
	r.ledgers.SetDefault(id, NewLedger())
	return id
}

// Get 按 ID 取账本；每次访问顺延有效期
// 账本已过期（或 ID 无效）时重建一个空账本，避免老 Cookie 导致 500
func (r *LedgerRegistry) Get(id string) *Ledger {
	if v, ok := r.ledgers.Get(id); ok {
		ledger := v.(*Ledger)
		r.ledgers.SetDefault(id, ledger)
		return ledger
	}
	ledger := NewLedger()
	r.ledgers.SetDefault(id, ledger)
	return ledger
}

// Drop 登出时丢弃账本
func (r *LedgerRegistry) Drop(id string) {
	r.ledgers.Delete(id)
}

// Prune 清理已过期的账本，返回清理后的存活数量
func (r *LedgerRegistry) Prune() int {
	r.ledgers.DeleteExpired()
	return r.ledgers.ItemCount()
}
