package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/pkg/common"
)

func TestCreateProduct(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	category := domain.Category{ID: common.UUIDint64(), Name: "Analgesics"}
	require.NoError(t, testApp.DB().Create(&category).Error)

	body := fmt.Sprintf(`{"name":"Ibuprofen 400mg","description":"Pain relief","price":4.25,"stock":120,"category_id":"%d"}`, category.ID)
	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/products", body)
	require.NoError(t, createProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var product domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.Equal(t, "Ibuprofen 400mg", product.Name)
	require.Equal(t, 4.25, product.Price)
	require.Equal(t, 120, product.Stock)
	require.NotNil(t, product.Category)
	require.Equal(t, "Analgesics", product.Category.Name)
}

func TestCreateProductValidation(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"description":"d","price":1,"stock":1,"category_id":"1"}`},
		{"missing description", `{"name":"n","price":1,"stock":1,"category_id":"1"}`},
		{"missing price", `{"name":"n","description":"d","stock":1,"category_id":"1"}`},
		{"missing stock", `{"name":"n","description":"d","price":1,"category_id":"1"}`},
		{"missing category", `{"name":"n","description":"d","price":1,"stock":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/products", tc.body)
			require.NoError(t, createProduct(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	var count int64
	testApp.DB().Model(&domain.Product{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestListProductsWithCategory(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	db := testApp.DB()

	category := domain.Category{ID: common.UUIDint64(), Name: "Vitamins"}
	require.NoError(t, db.Create(&category).Error)
	product := domain.Product{
		ID: common.UUIDint64(), Name: "Vitamin C", Description: "500mg tablets",
		Price: 7.5, Stock: 30, CategoryId: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	c, rec := newTestContext(t, testApp, operator, http.MethodGet, "/api/products", "")
	require.NoError(t, listProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Category)
	require.Equal(t, "Vitamins", rows[0].Category.Name)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	db := testApp.DB()

	product := domain.Product{
		ID: common.UUIDint64(), Name: "Aspirin", Description: "100mg",
		Price: 2.0, Stock: 10, CategoryId: 1,
	}
	require.NoError(t, db.Create(&product).Error)

	body := `{"name":"Aspirin Forte","description":"500mg","price":3.0,"stock":20,"category_id":"1"}`
	c, rec := newTestContext(t, testApp, operator, http.MethodPut, "/api/products/:id", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", product.ID))
	require.NoError(t, updateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Product
	require.NoError(t, db.Where("id = ?", product.ID).First(&updated).Error)
	require.Equal(t, "Aspirin Forte", updated.Name)
	require.Equal(t, 20, updated.Stock)

	c, rec = newTestContext(t, testApp, operator, http.MethodDelete, "/api/products/:id", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", product.ID))
	require.NoError(t, deleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	db.Model(&domain.Product{}).Count(&count)
	require.EqualValues(t, 0, count)
}
