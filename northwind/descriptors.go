package northwind

import (
	"time"

	"github.com/aiotlab/webserver_backend/datatable"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Placeholders substituted when a nullable join target is absent.
const (
	UnknownCustomer = "unknown customer"
	UnknownEmployee = "unknown employee"
)

// OrderRow is the projected grid row. JSON keys match the widget's
// columns[n][data] names.
type OrderRow struct {
	OrderID      int             `json:"orderID"`
	CustomerName string          `json:"customerName"`
	EmployeeName string          `json:"employeeName"`
	OrderDate    *time.Time      `json:"orderDate"`
	Freight      decimal.Decimal `json:"freight"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

const orderSearchID = "CAST(orders.id AS CHAR)"
const orderSearchCustomer = "customers.company_name"
const orderSearchEmployee = "CONCAT(employees.first_name, ' ', employees.last_name)"

// totalAmount is folded from detail rows inside the projection subquery, so
// it is only computed for the rows that survive pagination. It is therefore
// absent from SortMap: sorting by it falls back to the id default. Documented
// simplification, not an oversight.
const orderTotalAmountExpr = `(SELECT COALESCE(SUM(od.unit_price * od.quantity * (1 - od.discount)), 0)
	FROM order_details od WHERE od.order_id = orders.id)`

func orderBase(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Order{}).
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Joins("LEFT JOIN employees ON employees.id = orders.employee_id")
}

func orderDescriptor() datatable.Descriptor {
	return datatable.Descriptor{
		Base: orderBase,
		SearchExprs: []string{
			orderSearchID,
			orderSearchCustomer,
			orderSearchEmployee,
		},
		SortMap: map[string]string{
			"orderID":      "orders.id",
			"customerName": "customers.company_name",
			"employeeName": "employees.first_name",
			"orderDate":    "orders.order_date",
			"freight":      "orders.freight",
		},
		DefaultSort: "orders.id",
		TieBreak:    "orders.id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var rows []OrderRow
			err := page.Select(orderRowSelect).Scan(&rows).Error
			return rows, err
		},
	}
}

const orderRowSelect = `orders.id AS order_id,
	COALESCE(customers.company_name, '` + UnknownCustomer + `') AS customer_name,
	COALESCE(CONCAT(employees.first_name, ' ', employees.last_name), '` + UnknownEmployee + `') AS employee_name,
	orders.order_date,
	orders.freight,
	` + orderTotalAmountExpr + ` AS total_amount`

// ProductRow is the product grid row. Absent category/supplier project to
// empty strings (the product screen renders blanks, not placeholders).
type ProductRow struct {
	ProductID    int             `json:"productID"`
	ProductName  string          `json:"productName"`
	CategoryName string          `json:"categoryName"`
	SupplierName string          `json:"supplierName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitsInStock int             `json:"unitsInStock"`
	Discontinued bool            `json:"discontinued"`
}

func productBase(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN suppliers ON suppliers.id = products.supplier_id")
}

func productDescriptor() datatable.Descriptor {
	return datatable.Descriptor{
		Base: productBase,
		SearchExprs: []string{
			"CAST(products.id AS CHAR)",
			"products.product_name",
			"categories.category_name",
			"suppliers.company_name",
		},
		SortMap: map[string]string{
			"productID":    "products.id",
			"productName":  "products.product_name",
			"categoryName": "categories.category_name",
			"supplierName": "suppliers.company_name",
			"unitPrice":    "products.unit_price",
			"unitsInStock": "products.units_in_stock",
		},
		DefaultSort: "products.id",
		TieBreak:    "products.id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var rows []ProductRow
			err := page.Select(`products.id AS product_id,
				products.product_name,
				COALESCE(categories.category_name, '') AS category_name,
				COALESCE(suppliers.company_name, '') AS supplier_name,
				products.unit_price,
				products.units_in_stock,
				products.discontinued`).Scan(&rows).Error
			return rows, err
		},
	}
}

type lookupItem struct {
	ID   interface{} `json:"id"`
	Text string      `json:"text"`
}

type productLookupItem struct {
	ID    int             `json:"id"`
	Text  string          `json:"text"`
	Price decimal.Decimal `json:"price"`
}

func customerLookupDescriptor() datatable.LookupDescriptor {
	return datatable.LookupDescriptor{
		Base: func(db *gorm.DB) *gorm.DB {
			return db.Model(&models.Customer{})
		},
		Search: func(query *gorm.DB, term string) *gorm.DB {
			return query.Where("company_name LIKE ? OR id LIKE ?", "%"+term+"%", "%"+term+"%")
		},
		Order: "id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var items []lookupItem
			err := page.Select("id, CONCAT(company_name, ' (', id, ')') AS text").Scan(&items).Error
			return items, err
		},
	}
}

func employeeLookupDescriptor() datatable.LookupDescriptor {
	return datatable.LookupDescriptor{
		Base: func(db *gorm.DB) *gorm.DB {
			return db.Model(&models.Employee{})
		},
		Search: func(query *gorm.DB, term string) *gorm.DB {
			return query.Where("first_name LIKE ? OR last_name LIKE ?", "%"+term+"%", "%"+term+"%")
		},
		Order: "id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var items []lookupItem
			err := page.Select("id, CONCAT(first_name, ' ', last_name) AS text").Scan(&items).Error
			return items, err
		},
	}
}

// Product lookup also carries the unit price so the order form can prefill it.
func productLookupDescriptor() datatable.LookupDescriptor {
	return datatable.LookupDescriptor{
		Base: func(db *gorm.DB) *gorm.DB {
			return db.Model(&models.Product{})
		},
		Search: func(query *gorm.DB, term string) *gorm.DB {
			return query.Where("product_name LIKE ?", "%"+term+"%")
		},
		Order: "product_name, id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var items []productLookupItem
			err := page.Select("id, product_name AS text, unit_price AS price").Scan(&items).Error
			return items, err
		},
	}
}
