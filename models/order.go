package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           int              `gorm:"primary_key" json:"id"`
	CustomerID   *string          `gorm:"index;size:5" json:"customer_id"`
	EmployeeID   *int             `gorm:"index" json:"employee_id"`
	OrderDate    *time.Time       `gorm:"index" json:"order_date"`
	RequiredDate *time.Time       `json:"required_date"`
	Freight      decimal.Decimal  `gorm:"type:decimal(19,4);not null;default:0" json:"freight"`
	ShipName     string           `gorm:"size:40" json:"ship_name"`
	ShipAddress  string           `gorm:"size:60" json:"ship_address"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Employee *Employee     `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Details  []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
}

type OrderDetail struct {
	OrderID   int             `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID int             `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0" json:"unit_price"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"discount"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type NewOrder struct {
	CustomerID   *string          `json:"customer_id"`
	EmployeeID   *int             `json:"employee_id"`
	OrderDate    *time.Time       `json:"order_date" validate:"required"`
	RequiredDate *time.Time       `json:"required_date"`
	Freight      decimal.Decimal  `json:"freight"`
	ShipName     string           `json:"ship_name" validate:"max=40"`
	ShipAddress  string           `json:"ship_address" validate:"max=60"`
	Details      []NewOrderDetail `json:"details" validate:"dive"`
}

type NewOrderDetail struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Discount  decimal.Decimal `json:"discount"`
}
