package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/pharmadmin/internal/domain"
)

type orderCsvRow struct {
	ID        int64   `csv:"id"`
	Purchaser string  `csv:"purchaser"`
	Status    string  `csv:"status"`
	Total     float64 `csv:"total"`
	ItemCount int     `csv:"item_count"`
	CreatedAt string  `csv:"created_at"`
}

// exportOrders streams the order set as CSV. Optional start/end query
// params accept any common date format.
func exportOrders(c echo.Context) error {
	db := GetDB(c).Model(&domain.Order{})

	if raw := strings.TrimSpace(c.QueryParam("start")); raw != "" {
		start, err := dateparse.ParseAny(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid start date")
		}
		db = db.Where("created_at >= ?", start)
	}
	if raw := strings.TrimSpace(c.QueryParam("end")); raw != "" {
		end, err := dateparse.ParseAny(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid end date")
		}
		db = db.Where("created_at <= ?", end)
	}

	limit := GetApp(c).ConfigMgr().GetInt("order", "ExportLimit")
	if limit <= 0 {
		limit = 10000
	}

	var orders []domain.Order
	err := db.Preload("User").Preload("Items").
		Order("created_at DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return failInternal(c, "ORDERS_EXPORT", err)
	}

	rows := make([]orderCsvRow, 0, len(orders))
	for _, order := range orders {
		row := orderCsvRow{
			ID:        order.ID,
			Status:    string(order.Status),
			Total:     order.Total,
			ItemCount: len(order.Items),
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		}
		if order.User != nil {
			row.Purchaser = order.User.Realname
		}
		rows = append(rows, row)
	}

	csvdata, err := gocsv.MarshalString(&rows)
	if err != nil {
		return failInternal(c, "ORDERS_EXPORT", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvdata))
}
