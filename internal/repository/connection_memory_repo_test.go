package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conn-hub/internal/core/connection"
	"conn-hub/internal/model"
	pkgErrors "conn-hub/pkg/responses"
)

func strPtr(s string) *string { return &s }

func TestMemoryConnectionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConnectionRepository()

	conn := &model.Connection{ConnID: "c1", ConnType: "mysql", Host: strPtr("db")}
	require.NoError(t, repo.Create(ctx, conn))
	assert.Equal(t, int64(1), conn.ID)

	err := repo.Create(ctx, &model.Connection{ConnID: "c1", ConnType: "http"})
	assert.ErrorIs(t, err, pkgErrors.ErrRecordExists)

	got, err := repo.GetByConnID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "db", *got.Host)

	// 返回副本，修改不影响存储
	*got.Host = "changed"
	again, err := repo.GetByConnID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "db", *again.Host)

	again.Host = nil
	require.NoError(t, repo.Update(ctx, again))
	updated, err := repo.GetByConnID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, updated.Host)

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), pkgErrors.ErrRecordNotFound)
	_, err = repo.GetByConnID(ctx, "c1")
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Update(ctx, again), pkgErrors.ErrRecordNotFound)
}

func TestMemoryConnectionRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConnectionRepository()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &model.Connection{ConnID: fmt.Sprintf("conn-%d", i), ConnType: "http"}))
	}

	pager := connection.NewPaginator(100)
	limit := 2
	page, err := pager.Resolve("-connection_id", &limit, 1)
	require.NoError(t, err)

	got, total, err := repo.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, count)
	require.Len(t, got, 2)
	assert.Equal(t, "conn-3", got[0].ConnID)
	assert.Equal(t, "conn-2", got[1].ConnID)

	page, err = pager.Resolve("", nil, 10)
	require.NoError(t, err)
	got, total, err = repo.List(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, got)
}

func TestMemoryAuditLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditLogRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &model.AuditLog{Event: "a", ConnID: "c1", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.AuditLog{Event: "b", ConnID: "c1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &model.AuditLog{Event: "c", ConnID: "c2", CreatedAt: now}))

	logs, err := repo.List(ctx, "c1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[0].Event)

	logs, err = repo.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "c", logs[0].Event)

	purged, err := repo.PurgeBefore(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	logs, err = repo.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
