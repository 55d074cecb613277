package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/pkg/common"
)

func listOrderViews(t *testing.T, testApp *app.Application, operator domain.SysOpr) []orderView {
	t.Helper()
	c, rec := newTestContext(t, testApp, operator, http.MethodGet, "/api/orders", "")
	require.NoError(t, listOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var views []orderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	return views
}

func TestCreateOrder(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	body := `{"items":[{"product_id":"1001","quantity":2,"price":5.0}],"total":10.0}`
	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	require.Equal(t, int64(1001), order.Items[0].ProductID)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.Equal(t, 5.0, order.Items[0].Price)
	require.Equal(t, 10.0, order.Total)
	require.Equal(t, operator.ID, order.UserID)

	// items persisted together with the order
	var itemCount int64
	testApp.DB().Model(&domain.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	require.EqualValues(t, 1, itemCount)
}

func TestCreateOrderValidation(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	cases := []struct {
		name string
		body string
	}{
		{"missing items", `{"total":10.0}`},
		{"empty items", `{"items":[],"total":10.0}`},
		{"missing total", `{"items":[{"product_id":"1001","quantity":1,"price":5.0}]}`},
		{"zero total", `{"items":[{"product_id":"1001","quantity":1,"price":5.0}],"total":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/orders", tc.body)
			require.NoError(t, createOrder(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	var count int64
	testApp.DB().Model(&domain.Order{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func createTestOrder(t *testing.T, testApp *app.Application, operator domain.SysOpr) domain.Order {
	t.Helper()
	body := `{"items":[{"product_id":"1001","quantity":2,"price":5.0}],"total":10.0}`
	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	return order
}

func TestUpdateOrderStatus(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	order := createTestOrder(t, testApp, operator)

	// every status is reachable, including reverting a terminal state
	transitions := []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusCompleted,
		domain.OrderStatusPending,
		domain.OrderStatusCancelled,
	}
	for _, status := range transitions {
		body := fmt.Sprintf(`{"id":"%d","status":"%s"}`, order.ID, status)
		c, rec := newTestContext(t, testApp, operator, http.MethodPatch, "/api/orders", body)
		require.NoError(t, updateOrderStatus(c))
		require.Equal(t, http.StatusOK, rec.Code)

		views := listOrderViews(t, testApp, operator)
		require.Len(t, views, 1)
		require.Equal(t, status, views[0].Status)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	for _, body := range []string{`{"status":"COMPLETED"}`, `{"id":"1"}`} {
		c, rec := newTestContext(t, testApp, operator, http.MethodPatch, "/api/orders", body)
		require.NoError(t, updateOrderStatus(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	body := `{"id":"424242","status":"COMPLETED"}`
	c, rec := newTestContext(t, testApp, operator, http.MethodPatch, "/api/orders", body)
	require.NoError(t, updateOrderStatus(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// no record was silently created
	var count int64
	testApp.DB().Model(&domain.Order{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestDeleteOrder(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	order := createTestOrder(t, testApp, operator)

	body := fmt.Sprintf(`{"id":"%d"}`, order.ID)
	c, rec := newTestContext(t, testApp, operator, http.MethodDelete, "/api/orders", body)
	require.NoError(t, deleteOrder(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.Empty(t, listOrderViews(t, testApp, operator))

	// owned items are removed in the same transaction
	var itemCount int64
	testApp.DB().Model(&domain.OrderItem{}).Count(&itemCount)
	require.EqualValues(t, 0, itemCount)
}

func TestDeleteOrderValidation(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	createTestOrder(t, testApp, operator)

	c, rec := newTestContext(t, testApp, operator, http.MethodDelete, "/api/orders", `{}`)
	require.NoError(t, deleteOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	testApp.DB().Model(&domain.Order{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestListOrdersExpansion(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	db := testApp.DB()

	product := domain.Product{ID: common.UUIDint64(), Name: "Paracetamol 500mg", Price: 3.5, Stock: 40}
	require.NoError(t, db.Create(&product).Error)
	prescription := domain.Prescription{ID: common.UUIDint64(), DoctorName: "Dr. Rivera", Diagnosis: "Migraine"}
	require.NoError(t, db.Create(&prescription).Error)

	body := fmt.Sprintf(`{"items":[{"product_id":"%d","quantity":3,"price":3.5}],"total":10.5,"prescription_id":"%d"}`,
		product.ID, prescription.ID)
	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/orders", body)
	require.NoError(t, createOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	views := listOrderViews(t, testApp, operator)
	require.Len(t, views, 1)
	view := views[0]

	require.NotNil(t, view.User)
	require.Equal(t, operator.ID, view.User.ID)
	require.Equal(t, "operator@pharmacy.test", view.User.Email)

	require.Len(t, view.Items, 1)
	require.NotNil(t, view.Items[0].Product)
	require.Equal(t, "Paracetamol 500mg", view.Items[0].Product.Name)
	require.Equal(t, 3.5, view.Items[0].Product.Price)
	require.Equal(t, 3, view.Items[0].Quantity)

	require.NotNil(t, view.Prescription)
	require.Equal(t, "Dr. Rivera", view.Prescription.DoctorName)
}

func TestListOrdersNewestFirst(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)
	db := testApp.DB()

	older := createTestOrder(t, testApp, operator)
	newer := createTestOrder(t, testApp, operator)
	require.NoError(t, db.Model(&domain.Order{}).Where("id = ?", older.ID).
		Update("created_at", older.CreatedAt.Add(-time.Hour)).Error)

	views := listOrderViews(t, testApp, operator)
	require.Len(t, views, 2)
	require.Equal(t, newer.ID, views[0].ID)
	require.Equal(t, older.ID, views[1].ID)
}
