package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL 是会话在无访问后被回收的时间
const DefaultIdleTTL = 12 * time.Hour

// Registry 按会话 ID 管理 Workspace
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	now        func() time.Time
}

// NewRegistry 构造 Registry，ttl<=0 时使用 DefaultIdleTTL
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Acquire 返回 id 对应的会话；id 为空或已失效时创建新会话
func (r *Registry) Acquire(id string) *Workspace {
	now := r.now()

	if id != "" {
		r.mu.RLock()
		ws, ok := r.workspaces[id]
		r.mu.RUnlock()
		if ok {
			r.mu.Lock()
			ws.lastSeen = now
			r.mu.Unlock()
			return ws
		}
	}

	if id == "" {
		id = uuid.NewString()
	}
	ws := NewWorkspace(id)
	ws.lastSeen = now

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.workspaces[id]; ok {
		existing.lastSeen = now
		return existing
	}
	r.workspaces[id] = ws
	return ws
}

// Len 返回当前存活的会话数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// Sweep 回收超过 ttl 未访问的会话，返回回收数量
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ws := range r.workspaces {
		if ws.lastSeen.Before(cutoff) {
			delete(r.workspaces, id)
			removed++
		}
	}
	return removed
}
