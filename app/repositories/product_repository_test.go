package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

func newTestRepo(t *testing.T) *repositories.ProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return repositories.NewProductRepository(db)
}

var ctx = context.Background()

func strptr(s string) *string { return &s }

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{Name: "Pen", Price: 9.5, Stock: 100}
	require.NoError(t, repo.Create(ctx, &p))

	assert.Positive(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Nil(t, p.Description)
	assert.Nil(t, p.ImageURL)
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{
		Name:        "Notebook",
		Description: strptr("A5, dotted"),
		Price:       4.25,
		ImageURL:    strptr("https://cdn.example.com/notebook.jpg"),
		Stock:       12,
	}
	require.NoError(t, repo.Create(ctx, &p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Notebook", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "A5, dotted", *got.Description)
	assert.Equal(t, 4.25, got.Price)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn.example.com/notebook.jpg", *got.ImageURL)
	assert.Equal(t, 12, got.Stock)
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p := models.Product{
			Name:      fmt.Sprintf("item-%d", i),
			Price:     float64(i),
			Stock:     i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, &p))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt),
			"list must be non-increasing in created_at")
	}
	assert.Equal(t, "item-4", list[0].Name)
}

func TestListEmptyCatalog(t *testing.T) {
	repo := newTestRepo(t)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUpdateReplacesMutableFieldsOnly(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{
		Name:        "Pen",
		Description: strptr("blue ink"),
		Price:       9.5,
		ImageURL:    strptr("https://cdn.example.com/pen.jpg"),
		Stock:       100,
	}
	require.NoError(t, repo.Create(ctx, &p))
	origCreated := p.CreatedAt

	// Full replace: optional fields not resent become NULL again.
	err := repo.Update(ctx, p.ID, models.Product{
		Name:  "Pen v2",
		Price: 10,
		Stock: 90,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Pen v2", got.Name)
	assert.Nil(t, got.Description)
	assert.Equal(t, 10.0, got.Price)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, 90, got.Stock)
	assert.WithinDuration(t, origCreated, got.CreatedAt, time.Second)
}

func TestUpdateIdenticalValues(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{Name: "Mug", Price: 3, Stock: 7}
	require.NoError(t, repo.Create(ctx, &p))

	// Re-sending identical values must still succeed, not report missing.
	err := repo.Update(ctx, p.ID, models.Product{Name: "Mug", Price: 3, Stock: 7})
	assert.NoError(t, err)
}

func TestUpdateMissing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(ctx, 12345, models.Product{Name: "ghost", Price: 1, Stock: 1})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{Name: "Eraser", Price: 0.5, Stock: 3}
	require.NoError(t, repo.Create(ctx, &p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMissing(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Delete(ctx, 555)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestZeroStockStaysListed(t *testing.T) {
	repo := newTestRepo(t)

	p := models.Product{Name: "Sold out", Price: 1, Stock: 0}
	require.NoError(t, repo.Create(ctx, &p))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Stock)
}
