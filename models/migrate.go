package models

import "github.com/aiotlab/webserver_backend/config"

func MigrateTable() {
	db := config.GetDB()
	db.AutoMigrate(
		&User{},
		&Customer{},
		&Employee{},
		&Category{},
		&Supplier{},
		&Product{},
		&Order{},
		&OrderDetail{},
		&ExchangeReportStockDay{},
		&WeatherObservation{},
	)
}
