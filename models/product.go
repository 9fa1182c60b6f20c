package models

import "github.com/shopspring/decimal"

type Category struct {
	ID           int    `gorm:"primary_key" json:"id"`
	CategoryName string `gorm:"index;size:15;not null" json:"category_name"`
	Description  string `gorm:"type:text" json:"description"`
}

type Supplier struct {
	ID          int    `gorm:"primary_key" json:"id"`
	CompanyName string `gorm:"index;size:40;not null" json:"company_name"`
	ContactName string `gorm:"size:30" json:"contact_name"`
	City        string `gorm:"size:15" json:"city"`
	Country     string `gorm:"size:15" json:"country"`
	Phone       string `gorm:"size:24" json:"phone"`
}

type Product struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ProductName     string          `gorm:"index;size:40;not null" json:"product_name"`
	SupplierID      *int            `gorm:"index" json:"supplier_id"`
	CategoryID      *int            `gorm:"index" json:"category_id"`
	QuantityPerUnit string          `gorm:"size:20" json:"quantity_per_unit"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0" json:"unit_price"`
	UnitsInStock    int             `gorm:"not null;default:0" json:"units_in_stock"`
	Discontinued    *bool           `gorm:"not null;default:false" json:"discontinued"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

type NewProduct struct {
	ProductName     string          `json:"product_name" binding:"required" validate:"required,max=40"`
	SupplierID      *int            `json:"supplier_id"`
	CategoryID      *int            `json:"category_id"`
	QuantityPerUnit string          `json:"quantity_per_unit" validate:"max=20"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitsInStock    int             `json:"units_in_stock" validate:"gte=0"`
	Discontinued    bool            `json:"discontinued"`
}
