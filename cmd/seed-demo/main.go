package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/utils"
	"gorm.io/gorm"
)

// Seeds an admin account and a small demo dataset so the grids and lookups
// have something to show on a fresh database. Idempotent: tables that
// already hold rows are left alone.
func main() {
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	db := config.GetDB()

	if err := seedAdmin(db); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedNorthwind(db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}
	log.Println("seed complete")
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("account = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := utils.HashPassword("ChangeMe123")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Account:  "ADMIN",
		Password: string(hashed),
		Name:     "Administrator",
		Email:    "admin@example.com",
	}).Error
}

func seedNorthwind(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		customers := []models.Customer{
			{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: "Maria Anders", City: "Berlin", Country: "Germany"},
			{ID: "ANATR", CompanyName: "Ana Trujillo Emparedados", ContactName: "Ana Trujillo", City: "Mexico D.F.", Country: "Mexico"},
			{ID: "BERGS", CompanyName: "Berglunds snabbkop", ContactName: "Christina Berglund", City: "Lulea", Country: "Sweden"},
		}
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		employees := []models.Employee{
			{FirstName: "Nancy", LastName: "Davolio", Title: "Sales Representative"},
			{FirstName: "Andrew", LastName: "Fuller", Title: "Vice President, Sales"},
		}
		if err := tx.Create(&employees).Error; err != nil {
			return err
		}

		categories := []models.Category{
			{CategoryName: "Beverages", Description: "Soft drinks, coffees, teas"},
			{CategoryName: "Condiments", Description: "Sweet and savory sauces"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		suppliers := []models.Supplier{
			{CompanyName: "Exotic Liquids", ContactName: "Charlotte Cooper", City: "London", Country: "UK"},
			{CompanyName: "New Orleans Cajun Delights", ContactName: "Shelley Burke", City: "New Orleans", Country: "USA"},
		}
		if err := tx.Create(&suppliers).Error; err != nil {
			return err
		}

		products := []models.Product{
			{ProductName: "Chai", SupplierID: &suppliers[0].ID, CategoryID: &categories[0].ID, QuantityPerUnit: "10 boxes x 20 bags", UnitPrice: decimal.NewFromInt(18), UnitsInStock: 39},
			{ProductName: "Chang", SupplierID: &suppliers[0].ID, CategoryID: &categories[0].ID, QuantityPerUnit: "24 - 12 oz bottles", UnitPrice: decimal.NewFromInt(19), UnitsInStock: 17},
			{ProductName: "Aniseed Syrup", SupplierID: &suppliers[1].ID, CategoryID: &categories[1].ID, QuantityPerUnit: "12 - 550 ml bottles", UnitPrice: decimal.NewFromInt(10), UnitsInStock: 13},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		orderDate := time.Now().AddDate(0, 0, -7)
		order := models.Order{
			CustomerID: &customers[0].ID,
			EmployeeID: &employees[0].ID,
			OrderDate:  &orderDate,
			Freight:    decimal.NewFromFloat(32.38),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		details := []models.OrderDetail{
			{OrderID: order.ID, ProductID: products[0].ID, UnitPrice: products[0].UnitPrice, Quantity: 12, Discount: decimal.Zero},
			{OrderID: order.ID, ProductID: products[2].ID, UnitPrice: products[2].UnitPrice, Quantity: 5, Discount: decimal.NewFromFloat(0.05)},
		}
		return tx.Create(&details).Error
	})
}
