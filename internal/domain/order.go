package domain

import "time"

// OrderStatus is the workflow stage of an order. The transition graph is
// deliberately unrestricted: any status may be overwritten with any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order is a purchase transaction. Total is supplied by the caller at
// creation time and is not reconciled against the item subtotals.
type Order struct {
	ID             int64         `json:"id,string"`
	UserID         int64         `gorm:"index" json:"user_id,string"`
	User           *SysOpr       `gorm:"foreignKey:UserID" json:"-"`
	Total          float64       `json:"total"`
	Status         OrderStatus   `gorm:"size:20;index" json:"status"`
	PrescriptionID *int64        `json:"prescription_id,omitempty"`
	Prescription   *Prescription `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Order) TableName() string {
	return "pha_order"
}

// OrderItem is a line within an order. Price is a snapshot captured at
// order creation, never recomputed from the product afterwards.
type OrderItem struct {
	ID        int64    `json:"id,string"`
	OrderID   int64    `gorm:"index" json:"order_id,string"`
	ProductID int64    `gorm:"index" json:"product_id,string"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
}

func (OrderItem) TableName() string {
	return "pha_order_item"
}
