package graphql_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appgraphql "github.com/shashiranjanraj/storefront/app/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	pkggraphql "github.com/shashiranjanraj/storefront/pkg/graphql"
)

func newGraphQLHandler(t *testing.T) (http.HandlerFunc, *services.CatalogService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	svc := services.NewCatalogService(repositories.NewProductRepository(db))

	schema, err := appgraphql.NewSchema(svc)
	require.NoError(t, err)

	return pkggraphql.Handler(schema), svc
}

func query(t *testing.T, h http.HandlerFunc, q string) map[string]any {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": q})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestProductsQuery(t *testing.T) {
	h, svc := newGraphQLHandler(t)

	_, _, err := svc.Create(context.Background(), services.ProductForm{Name: "Pen", Price: "9.50", Stock: "100"})
	require.NoError(t, err)

	result := query(t, h, `{ products { id name price stock description } }`)
	require.NotContains(t, result, "errors")

	data := result["data"].(map[string]any)
	products := data["products"].([]any)
	require.Len(t, products, 1)

	first := products[0].(map[string]any)
	assert.Equal(t, "Pen", first["name"])
	assert.Equal(t, 9.5, first["price"])
	assert.Nil(t, first["description"])
}

func TestProductsQueryInStockFilter(t *testing.T) {
	h, svc := newGraphQLHandler(t)

	_, _, err := svc.Create(context.Background(), services.ProductForm{Name: "Pen", Price: "9.50", Stock: "100"})
	require.NoError(t, err)
	_, _, err = svc.Create(context.Background(), services.ProductForm{Name: "Sold Out", Price: "1", Stock: "0"})
	require.NoError(t, err)

	result := query(t, h, `{ products(in_stock: true) { name stock } }`)
	require.NotContains(t, result, "errors")

	data := result["data"].(map[string]any)
	products := data["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Pen", products[0].(map[string]any)["name"])

	// without the flag both rows come back
	result = query(t, h, `{ products { name } }`)
	data = result["data"].(map[string]any)
	assert.Len(t, data["products"], 2)
}

func TestProductByID(t *testing.T) {
	h, svc := newGraphQLHandler(t)

	p, _, err := svc.Create(context.Background(), services.ProductForm{Name: "Mug", Price: "3", Stock: "7"})
	require.NoError(t, err)

	result := query(t, h, fmt.Sprintf(`{ product(id: %d) { name created_at } }`, p.ID))
	require.NotContains(t, result, "errors")

	data := result["data"].(map[string]any)
	product := data["product"].(map[string]any)
	assert.Equal(t, "Mug", product["name"])
	assert.NotEmpty(t, product["created_at"])
}

func TestProductByIDUnknownIsNull(t *testing.T) {
	h, _ := newGraphQLHandler(t)

	result := query(t, h, `{ product(id: 404) { name } }`)
	require.NotContains(t, result, "errors")

	data := result["data"].(map[string]any)
	assert.Nil(t, data["product"])
}
