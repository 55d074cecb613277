package adminapi

import (
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/summary", dashboardSummary)
}

// SystemSettings is the decoded "system" settings section
type SystemSettings struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`
}

type orderTotalStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

type dashboardSummaryView struct {
	Settings      SystemSettings   `json:"settings"`
	Orders        int64            `json:"orders"`
	OrdersByState map[string]int64 `json:"orders_by_status"`
	Products      int64            `json:"products"`
	Categories    int64            `json:"categories"`
	Clients       int64            `json:"clients"`
	Totals        orderTotalStats  `json:"order_totals"`
}

// dashboardSummary aggregates the counts and order total statistics shown
// on the dashboard landing page.
func dashboardSummary(c echo.Context) error {
	db := GetDB(c)
	view := dashboardSummaryView{OrdersByState: map[string]int64{}}

	if err := GetApp(c).ConfigMgr().GetSection("system", &view.Settings); err != nil {
		return failInternal(c, "DASHBOARD_SUMMARY", err)
	}

	if err := db.Model(&domain.Order{}).Count(&view.Orders).Error; err != nil {
		return failInternal(c, "DASHBOARD_SUMMARY", err)
	}
	db.Model(&domain.Product{}).Count(&view.Products)
	db.Model(&domain.Category{}).Count(&view.Categories)
	db.Model(&domain.Client{}).Count(&view.Clients)

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusCompleted,
		domain.OrderStatusCancelled,
	} {
		var count int64
		db.Model(&domain.Order{}).Where("status = ?", status).Count(&count)
		view.OrdersByState[string(status)] = count
	}

	var totals []float64
	db.Model(&domain.Order{}).Pluck("total", &totals)
	if len(totals) > 0 {
		view.Totals.Mean, _ = stats.Mean(totals)
		view.Totals.Median, _ = stats.Median(totals)
		view.Totals.P90, _ = stats.Percentile(totals, 90)
	}

	return ok(c, view)
}
