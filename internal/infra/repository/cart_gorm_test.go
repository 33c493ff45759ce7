package repository

import (
	"context"
	"math"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db/dbtest"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddOrMerge_MergesSameProduct(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	cat := dbtest.Category(t, gdb, "Beverages")
	p := dbtest.Product(t, gdb, cat.ID, "Chai", "18.00")
	c := dbtest.Customer(t, gdb, "a@example.com")
	r := NewCartGormRepository(gdb)

	first, err := r.AddOrMerge(ctx, c.ID, p.ID, 2)
	require.NoError(t, err)
	second, err := r.AddOrMerge(ctx, c.ID, p.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)
	require.NotNil(t, second.Product)
	assert.Equal(t, "Chai", second.Product.Name)
	require.NotNil(t, second.Product.Category)
	assert.Equal(t, "Beverages", second.Product.Category.Name)

	lines, err := r.LinesFor(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCart_AddOrMerge_RejectsNonPositive(t *testing.T) {
	gdb := dbtest.New(t)
	r := NewCartGormRepository(gdb)

	_, err := r.AddOrMerge(context.Background(), 1, 1, 0)
	assert.True(t, errors.Is(err, repo.ErrInvalidArgument))

	var n int64
	require.NoError(t, gdb.Model(&model.CartItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCart_AddOrMerge_RejectsOverCeiling(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	cat := dbtest.Category(t, gdb, "Beverages")
	p := dbtest.Product(t, gdb, cat.ID, "Chai", "18.00")
	c := dbtest.Customer(t, gdb, "a@example.com")
	r := NewCartGormRepository(gdb)

	_, err := r.AddOrMerge(ctx, c.ID, p.ID, math.MaxInt64)
	assert.True(t, errors.Is(err, repo.ErrInvalidArgument))

	line, err := r.AddOrMerge(ctx, c.ID, p.ID, model.MaxCartQuantity-1)
	require.NoError(t, err)

	// ちょうど上限までは加算できる
	line, err = r.AddOrMerge(ctx, c.ID, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.MaxCartQuantity, line.Quantity)

	_, err = r.AddOrMerge(ctx, c.ID, p.ID, 1)
	assert.True(t, errors.Is(err, repo.ErrInvalidArgument))

	// 超過分はrollbackされ、読み取りも壊れない
	lines, err := r.LinesFor(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, model.MaxCartQuantity, lines[0].Quantity)

	n, err := r.SumQuantity(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MaxCartQuantity, n)

	assert.True(t, errors.Is(r.SetQuantity(ctx, line.ID, model.MaxCartQuantity+1), repo.ErrInvalidArgument))
}

func TestCart_SetQuantity_FloorLeavesLineUnchanged(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	cat := dbtest.Category(t, gdb, "Beverages")
	p := dbtest.Product(t, gdb, cat.ID, "Chai", "18.00")
	c := dbtest.Customer(t, gdb, "a@example.com")
	line := dbtest.CartLine(t, gdb, c.ID, p.ID, 4)
	r := NewCartGormRepository(gdb)

	for _, q := range []int64{0, -1} {
		err := r.SetQuantity(ctx, line.ID, q)
		assert.True(t, errors.Is(err, repo.ErrInvalidArgument))
	}

	got, err := r.FindByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	require.NoError(t, r.SetQuantity(ctx, line.ID, 7))
	got, err = r.FindByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Quantity)
}

func TestCart_MissingLineIsNoop(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	r := NewCartGormRepository(gdb)

	assert.NoError(t, r.SetQuantity(ctx, 999, 2))
	assert.NoError(t, r.Remove(ctx, 999))

	_, err := r.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, repo.ErrNotFound))
}

func TestCart_LinesForOrderedAndSummed(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	cat := dbtest.Category(t, gdb, "Condiments")
	p1 := dbtest.Product(t, gdb, cat.ID, "Syrup", "10.00")
	p2 := dbtest.Product(t, gdb, cat.ID, "Salt", "5.00")
	c := dbtest.Customer(t, gdb, "a@example.com")
	other := dbtest.Customer(t, gdb, "b@example.com")
	l1 := dbtest.CartLine(t, gdb, c.ID, p1.ID, 2)
	l2 := dbtest.CartLine(t, gdb, c.ID, p2.ID, 1)
	dbtest.CartLine(t, gdb, other.ID, p1.ID, 9)
	r := NewCartGormRepository(gdb)

	lines, err := r.LinesFor(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, l1.ID, lines[0].ID)
	assert.Equal(t, l2.ID, lines[1].ID)

	n, err := r.SumQuantity(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = r.SumQuantity(ctx, 12345)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCart_DeleteLines_ConflictWhenAlreadyGone(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	cat := dbtest.Category(t, gdb, "Condiments")
	p1 := dbtest.Product(t, gdb, cat.ID, "Syrup", "10.00")
	p2 := dbtest.Product(t, gdb, cat.ID, "Salt", "5.00")
	c := dbtest.Customer(t, gdb, "a@example.com")
	l1 := dbtest.CartLine(t, gdb, c.ID, p1.ID, 2)
	l2 := dbtest.CartLine(t, gdb, c.ID, p2.ID, 1)
	r := NewCartGormRepository(gdb)

	require.NoError(t, r.Remove(ctx, l2.ID))

	err := r.DeleteLines(ctx, c.ID, []int64{l1.ID, l2.ID})
	assert.True(t, errors.Is(err, repo.ErrConflict))

	require.NoError(t, r.DeleteLines(ctx, c.ID, nil))
}
