package app

import (
	"github.com/talkincode/pharmadmin/pkg/metrics"
	"go.uber.org/zap"
)

// Event bus topics published by the order workflow
const (
	EventOrderCreated       = "order:created"
	EventOrderStatusUpdated = "order:status_updated"
	EventOrderDeleted       = "order:deleted"
)

func (a *Application) initEvents() {
	err := a.bus.Subscribe(EventOrderCreated, func(orderID int64, total float64) {
		metrics.IncrCounter("orders_created", 1)
		zap.L().Info("order created",
			zap.Int64("order_id", orderID),
			zap.Float64("total", total))
	})
	if err != nil {
		zap.S().Errorf("subscribe %s error %s", EventOrderCreated, err.Error())
	}

	err = a.bus.Subscribe(EventOrderStatusUpdated, func(orderID int64, status string) {
		metrics.IncrCounter("orders_status_updated", 1)
		zap.L().Info("order status updated",
			zap.Int64("order_id", orderID),
			zap.String("status", status))
	})
	if err != nil {
		zap.S().Errorf("subscribe %s error %s", EventOrderStatusUpdated, err.Error())
	}

	err = a.bus.Subscribe(EventOrderDeleted, func(orderID int64) {
		metrics.IncrCounter("orders_deleted", 1)
		zap.L().Info("order deleted", zap.Int64("order_id", orderID))
	})
	if err != nil {
		zap.S().Errorf("subscribe %s error %s", EventOrderDeleted, err.Error())
	}
}
