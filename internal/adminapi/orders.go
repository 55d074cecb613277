package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
	"github.com/talkincode/pharmadmin/pkg/common"
	"gorm.io/gorm"
)

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPATCH("/orders", updateOrderStatus)
	webserver.ApiDELETE("/orders", deleteOrder)
	webserver.ApiGET("/orders/export", exportOrders)
}

type orderUserView struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderProductView struct {
	ID    int64   `json:"id,string"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type orderItemView struct {
	ID        int64             `json:"id,string"`
	ProductID int64             `json:"product_id,string"`
	Quantity  int               `json:"quantity"`
	Price     float64           `json:"price"`
	Product   *orderProductView `json:"product,omitempty"`
}

type orderView struct {
	ID           int64                `json:"id,string"`
	User         *orderUserView       `json:"user,omitempty"`
	Total        float64              `json:"total"`
	Status       domain.OrderStatus   `json:"status"`
	Prescription *domain.Prescription `json:"prescription,omitempty"`
	Items        []orderItemView      `json:"items"`
	CreatedAt    time.Time            `json:"created_at"`
}

func newOrderView(order domain.Order) orderView {
	view := orderView{
		ID:           order.ID,
		Total:        order.Total,
		Status:       order.Status,
		Prescription: order.Prescription,
		Items:        make([]orderItemView, 0, len(order.Items)),
		CreatedAt:    order.CreatedAt,
	}
	if order.User != nil {
		view.User = &orderUserView{
			ID:    order.User.ID,
			Name:  order.User.Realname,
			Email: order.User.Email,
		}
	}
	for _, item := range order.Items {
		itemView := orderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			itemView.Product = &orderProductView{
				ID:    item.Product.ID,
				Name:  item.Product.Name,
				Price: item.Product.Price,
			}
		}
		view.Items = append(view.Items, itemView)
	}
	return view
}

// listOrders returns every order, newest first, expanded with the
// purchaser, the line items with their products and the attached
// prescription when present.
func listOrders(c echo.Context) error {
	var orders []domain.Order
	err := GetDB(c).
		Preload("User").
		Preload("Items.Product").
		Preload("Prescription").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return failInternal(c, "ORDERS_GET", err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	return ok(c, views)
}

type orderItemPayload struct {
	ProductID int64   `json:"product_id,string"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderCreatePayload struct {
	Items          []orderItemPayload `json:"items"`
	Total          float64            `json:"total"`
	PrescriptionID string             `json:"prescription_id"`
}

// createOrder persists a new order and its items as a single creation
// unit. The purchaser is always the authenticated operator; the supplied
// total and item prices are trusted as-is and never recomputed. Stock is
// not decremented here.
func createOrder(c echo.Context) error {
	var payload orderCreatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse order")
	}
	if len(payload.Items) == 0 || payload.Total == 0 {
		return fail(c, http.StatusBadRequest, "Missing required order fields")
	}

	order := domain.Order{
		ID:        common.UUIDint64(),
		UserID:    Operator(c).ID,
		Total:     payload.Total,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if payload.PrescriptionID != "" {
		if pid, err := strconv.ParseInt(payload.PrescriptionID, 10, 64); err == nil {
			order.PrescriptionID = &pid
		}
	}
	for _, item := range payload.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        common.UUIDint64(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := GetDB(c).Create(&order).Error; err != nil {
		return failInternal(c, "ORDERS_POST", err)
	}

	logOperation(c, "order_create", "created order "+strconv.FormatInt(order.ID, 10))
	GetApp(c).Bus().Publish(app.EventOrderCreated, order.ID, order.Total)
	return ok(c, order)
}

type orderStatusPayload struct {
	ID     int64  `json:"id,string"`
	Status string `json:"status"`
}

// updateOrderStatus overwrites the order status unconditionally; the
// transition graph is not restricted and terminal states may be left
// again.
func updateOrderStatus(c echo.Context) error {
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse order update")
	}
	if payload.ID == 0 || payload.Status == "" {
		return fail(c, http.StatusBadRequest, "Missing order id or status")
	}

	var order domain.Order
	if err := GetDB(c).Where("id = ?", payload.ID).First(&order).Error; err != nil {
		return failInternal(c, "ORDERS_PATCH", err)
	}

	err := GetDB(c).Model(&domain.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     payload.Status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return failInternal(c, "ORDERS_PATCH", err)
	}

	GetDB(c).Where("id = ?", order.ID).First(&order)
	logOperation(c, "order_status", "order "+strconv.FormatInt(order.ID, 10)+" -> "+payload.Status)
	GetApp(c).Bus().Publish(app.EventOrderStatusUpdated, order.ID, payload.Status)
	return ok(c, order)
}

type orderDeletePayload struct {
	ID int64 `json:"id,string"`
}

// deleteOrder removes the order unconditionally regardless of status.
// The owned order items are deleted in the same transaction so no
// orphaned lines are left behind.
func deleteOrder(c echo.Context) error {
	var payload orderDeletePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse order delete")
	}
	if payload.ID == 0 {
		return fail(c, http.StatusBadRequest, "ID required")
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", payload.ID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", payload.ID).Delete(&domain.Order{}).Error
	})
	if err != nil {
		return failInternal(c, "ORDERS_DELETE", err)
	}

	logOperation(c, "order_delete", "deleted order "+strconv.FormatInt(payload.ID, 10))
	GetApp(c).Bus().Publish(app.EventOrderDeleted, payload.ID)
	return c.NoContent(http.StatusNoContent)
}
