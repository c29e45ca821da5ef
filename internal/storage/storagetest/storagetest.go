// Package storagetest holds the behaviour checks every storage.Backend must pass.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an initialised, empty backend. The caller's cleanup closes it.
type Factory func(t *testing.T) storage.Backend

// Run executes the shared suite against backends produced by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Run("EmptyList", func(t *testing.T) { testEmptyList(t, newBackend(t)) })
	t.Run("CreateAssignsIDAndTimestamps", func(t *testing.T) { testCreate(t, newBackend(t)) })
	t.Run("ListCreationOrder", func(t *testing.T) { testListOrder(t, newBackend(t)) })
	t.Run("GetNotFound", func(t *testing.T) { testGetNotFound(t, newBackend(t)) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newBackend(t)) })
	t.Run("UpdateKeepsExplicitCreatedAt", func(t *testing.T) { testUpdateKeepsCreatedAt(t, newBackend(t)) })
	t.Run("UpdateErrors", func(t *testing.T) { testUpdateErrors(t, newBackend(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newBackend(t)) })
	t.Run("ReturnedDesignsAreCopies", func(t *testing.T) { testCopies(t, newBackend(t)) })
	t.Run("ConcurrentCreate", func(t *testing.T) { testConcurrentCreate(t, newBackend(t)) })
}

func named(name string) core.Design {
	d := valuation.DefaultDesign("adder")
	d.Name = name
	return d
}

func testEmptyList(t *testing.T, b storage.Backend) {
	list, err := b.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testCreate(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	d := named("Night Rider")
	d.ID = "client-chosen"

	before := time.Now().Add(-time.Second)
	require.NoError(t, b.Create(ctx, &d))

	assert.NotEmpty(t, d.ID)
	assert.NotEqual(t, "client-chosen", d.ID)
	require.NotNil(t, d.CreatedAt)
	require.NotNil(t, d.UpdatedAt)
	assert.True(t, d.CreatedAt.After(before))
	assert.True(t, d.CreatedAt.Equal(*d.UpdatedAt))

	got, err := b.Get(ctx, d.ID)
	require.NoError(t, err)
	assertSameDesign(t, d, got)
}

func testListOrder(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		d := named(fmt.Sprintf("Design %d", i))
		require.NoError(t, b.Create(ctx, &d))
		ids = append(ids, d.ID)
	}

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, d := range list {
		assert.Equal(t, ids[i], d.ID)
		assert.Equal(t, fmt.Sprintf("Design %d", i), d.Name)
	}
}

func testGetNotFound(t *testing.T, b storage.Backend) {
	_, err := b.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUpdate(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	d := named("Before")
	require.NoError(t, b.Create(ctx, &d))
	created := *d.CreatedAt

	time.Sleep(2 * time.Millisecond)

	upd := d.Clone()
	upd.Name = "After"
	upd.CreatedAt = nil
	upd.Modifications.Performance.EngineLevel = 3
	upd.Modifications.Visual.Wheels = "tuner"
	require.NoError(t, b.Update(ctx, &upd))

	require.NotNil(t, upd.CreatedAt)
	assert.True(t, upd.CreatedAt.Equal(created), "CreatedAt is preserved")
	assert.True(t, upd.UpdatedAt.After(created))

	got, err := b.Get(ctx, d.ID)
	require.NoError(t, err)
	assertSameDesign(t, upd, got)

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func testUpdateKeepsCreatedAt(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	d := named("Dated")
	require.NoError(t, b.Create(ctx, &d))

	explicit := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.CreatedAt = &explicit
	require.NoError(t, b.Update(ctx, &d))

	got, err := b.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(explicit))
}

func testUpdateErrors(t *testing.T, b storage.Backend) {
	ctx := context.Background()

	noID := named("No ID")
	assert.ErrorIs(t, b.Update(ctx, &noID), storage.ErrMissingID)

	unknown := named("Unknown")
	unknown.ID = "does-not-exist"
	assert.ErrorIs(t, b.Update(ctx, &unknown), storage.ErrNotFound)

	list, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "failed updates must not insert")
}

func testDelete(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	keep := named("Keep")
	drop := named("Drop")
	require.NoError(t, b.Create(ctx, &keep))
	require.NoError(t, b.Create(ctx, &drop))

	require.NoError(t, b.Delete(ctx, drop.ID))

	_, err := b.Get(ctx, drop.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, drop.ID), storage.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, ""), storage.ErrMissingID)

	list, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func testCopies(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	d := named("Original")
	require.NoError(t, b.Create(ctx, &d))

	// Mutating the caller's struct after Create must not reach the store.
	*d.Modifications.Paint.Secondary = "#ABCDEF"
	d.Name = "Changed"

	got, err := b.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)
	assert.Equal(t, "#000000", *got.Modifications.Paint.Secondary)

	*got.Modifications.Paint.Secondary = "#FEDCBA"
	again, err := b.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "#000000", *again.Modifications.Paint.Secondary)
}

func testConcurrentCreate(t *testing.T, b storage.Backend) {
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := named(fmt.Sprintf("Parallel %d", i))
			errs[i] = b.Create(ctx, &d)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	list, err := b.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)

	seen := make(map[string]bool, n)
	for _, d := range list {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
	}
}

func assertSameDesign(t *testing.T, want, got core.Design) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.BaseModel, got.BaseModel)
	assert.Equal(t, want.Modifications, got.Modifications)
	require.NotNil(t, got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, want.CreatedAt.Equal(*got.CreatedAt), "createdAt %v != %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(*got.UpdatedAt), "updatedAt %v != %v", want.UpdatedAt, got.UpdatedAt)
}
