package repository

import (
	"context"
	"sync"
	"time"

	"conn-hub/internal/core/connection"
	"conn-hub/internal/core/paginate"
	"conn-hub/internal/model"
	pkgErrors "conn-hub/pkg/responses"
)

// memoryConnectionRepository 内存实现，用于 database.driver=memory 及测试
// 密码不加密，读写均返回副本
type memoryConnectionRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]*model.Connection
	pager  *paginate.Engine[*model.Connection]
}

func NewMemoryConnectionRepository() ConnectionRepository {
	return &memoryConnectionRepository{
		items: make(map[string]*model.Connection),
		pager: connection.NewPaginator(paginate.DefaultMaxLimit),
	}
}

func (r *memoryConnectionRepository) Create(_ context.Context, conn *model.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[conn.ConnID]; ok {
		return pkgErrors.ErrRecordExists
	}
	r.nextID++
	now := time.Now()
	conn.ID = r.nextID
	conn.CreatedAt = now
	conn.UpdatedAt = now
	r.items[conn.ConnID] = conn.Clone()
	return nil
}

func (r *memoryConnectionRepository) GetByConnID(_ context.Context, connID string) (*model.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.items[connID]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return conn.Clone(), nil
}

func (r *memoryConnectionRepository) List(_ context.Context, page paginate.Page) ([]*model.Connection, int64, error) {
	r.mu.RLock()
	all := make([]*model.Connection, 0, len(r.items))
	for _, conn := range r.items {
		all = append(all, conn)
	}
	r.mu.RUnlock()

	got, total := r.pager.Apply(all, page)
	out := make([]*model.Connection, 0, len(got))
	for _, conn := range got {
		out = append(out, conn.Clone())
	}
	return out, total, nil
}

func (r *memoryConnectionRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *memoryConnectionRepository) Update(_ context.Context, conn *model.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[conn.ConnID]
	if !ok || cur.ID != conn.ID {
		return pkgErrors.ErrRecordNotFound
	}
	conn.CreatedAt = cur.CreatedAt
	conn.UpdatedAt = time.Now()
	r.items[conn.ConnID] = conn.Clone()
	return nil
}

func (r *memoryConnectionRepository) Delete(_ context.Context, connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[connID]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	delete(r.items, connID)
	return nil
}
