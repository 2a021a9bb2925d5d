package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
)

func newTestService(t *testing.T) *services.CatalogService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return services.NewCatalogService(repositories.NewProductRepository(db))
}

var ctx = context.Background()

func validForm() services.ProductForm {
	return services.ProductForm{
		Name:  "Pen",
		Price: "9.50",
		Stock: "100",
	}
}

func TestNormalizeEmptyOptionalsBecomeAbsent(t *testing.T) {
	p, errs := services.Normalize(services.ProductForm{
		Name:        "Pen",
		Description: "",
		Price:       "9.50",
		ImageURL:    "",
		Stock:       "100",
	})

	require.Nil(t, errs)
	assert.Equal(t, "Pen", p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, 9.5, p.Price)
	assert.Nil(t, p.ImageURL)
	assert.Equal(t, 100, p.Stock)
}

func TestNormalizePassesOptionalsThrough(t *testing.T) {
	p, errs := services.Normalize(services.ProductForm{
		Name:        "Pen",
		Description: "blue ink",
		Price:       "1",
		ImageURL:    "not-even-a-url",
		Stock:       "0",
	})

	require.Nil(t, errs)
	require.NotNil(t, p.Description)
	assert.Equal(t, "blue ink", *p.Description)
	// image_url is not validated for reachability or format.
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, "not-even-a-url", *p.ImageURL)
}

func TestNormalizeRejections(t *testing.T) {
	cases := []struct {
		name  string
		form  services.ProductForm
		field string
	}{
		{"missing name", services.ProductForm{Price: "1", Stock: "1"}, "name"},
		{"blank name", services.ProductForm{Name: "   ", Price: "1", Stock: "1"}, "name"},
		{"missing price", services.ProductForm{Name: "x", Stock: "1"}, "price"},
		{"unparseable price", services.ProductForm{Name: "x", Price: "abc", Stock: "1"}, "price"},
		{"negative price", services.ProductForm{Name: "x", Price: "-5", Stock: "1"}, "price"},
		{"NaN price", services.ProductForm{Name: "x", Price: "NaN", Stock: "1"}, "price"},
		{"lowercase nan price", services.ProductForm{Name: "x", Price: "nan", Stock: "1"}, "price"},
		{"infinite price", services.ProductForm{Name: "x", Price: "Inf", Stock: "1"}, "price"},
		{"signed infinite price", services.ProductForm{Name: "x", Price: "+Inf", Stock: "1"}, "price"},
		{"missing stock", services.ProductForm{Name: "x", Price: "1"}, "stock"},
		{"fractional stock", services.ProductForm{Name: "x", Price: "1", Stock: "1.5"}, "stock"},
		{"negative stock", services.ProductForm{Name: "x", Price: "1", Stock: "-3"}, "stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := services.Normalize(tc.form)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestNormalizeCollectsAllFieldErrors(t *testing.T) {
	_, errs := services.Normalize(services.ProductForm{
		Price: "nope",
		Stock: "nope",
	})

	require.NotNil(t, errs)
	assert.Len(t, errs, 3)
}

func TestCreateRoundTrip(t *testing.T) {
	svc := newTestService(t)

	p, errs, err := svc.Create(ctx, validForm())
	require.NoError(t, err)
	require.Nil(t, errs)

	assert.Positive(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, "Pen", p.Name)
	assert.Nil(t, p.Description)
	assert.Equal(t, 9.5, p.Price)
	assert.Equal(t, 100, p.Stock)
}

func TestCreateValidationFailureTouchesNothing(t *testing.T) {
	svc := newTestService(t)

	_, errs, err := svc.Create(ctx, services.ProductForm{Name: "x", Price: "-1", Stock: "1"})
	require.NoError(t, err)
	require.NotNil(t, errs)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateFullReplace(t *testing.T) {
	svc := newTestService(t)

	p, _, err := svc.Create(ctx, services.ProductForm{
		Name:        "Pen",
		Description: "blue ink",
		Price:       "9.50",
		ImageURL:    "https://cdn.example.com/pen.jpg",
		Stock:       "100",
	})
	require.NoError(t, err)

	errs, err := svc.Update(ctx, p.ID, validForm())
	require.NoError(t, err)
	require.Nil(t, errs)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	// Optional fields not resent are cleared, not preserved.
	assert.Nil(t, got.Description)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, p.ID, got.ID)
	assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, 0)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := newTestService(t)

	errs, err := svc.Update(ctx, 404, validForm())
	require.Nil(t, errs)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := newTestService(t)

	err := svc.Delete(ctx, 404)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestMutationsFireCatalogUpdated(t *testing.T) {
	defer event.Flush()
	svc := newTestService(t)

	var fired atomic.Int32
	event.Listen(services.CatalogUpdated, func(payload interface{}) {
		fired.Add(1)
	})

	p, _, err := svc.Create(ctx, validForm())
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, validForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	assert.Equal(t, int32(3), fired.Load())
}

func TestFailedMutationDoesNotFire(t *testing.T) {
	defer event.Flush()
	svc := newTestService(t)

	var fired atomic.Int32
	event.Listen(services.CatalogUpdated, func(payload interface{}) {
		fired.Add(1)
	})

	_ = svc.Delete(ctx, 999)
	_, _, _ = svc.Create(ctx, services.ProductForm{Price: "a", Stock: "b"})

	assert.Equal(t, int32(0), fired.Load())
}
