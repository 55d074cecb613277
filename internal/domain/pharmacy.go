package domain

import "time"

// Category groups products in the catalog
type Category struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"size:1024" json:"description" form:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "pha_category"
}

// Product is a catalog item. Stock is user supplied and is not mutated
// by the order workflow.
type Product struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"size:1024" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	Stock       int       `json:"stock" form:"stock"`
	CategoryId  int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "pha_product"
}

// Client is a pharmacy customer record
type Client struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Mobile    string    `json:"mobile" form:"mobile"`
	Address   string    `json:"address" form:"address"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "pha_client"
}

// Prescription is a medical prescription that can be attached to at most
// one order.
type Prescription struct {
	ID         int64     `json:"id,string" form:"id"`
	DoctorName string    `json:"doctor_name" form:"doctor_name"`
	Diagnosis  string    `gorm:"size:1024" json:"diagnosis" form:"diagnosis"`
	Notes      string    `gorm:"size:1024" json:"notes" form:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Prescription) TableName() string {
	return "pha_prescription"
}
