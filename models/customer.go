package models

type Customer struct {
	ID           string `gorm:"primary_key;size:5" json:"id"`
	CompanyName  string `gorm:"index;size:40;not null" json:"company_name"`
	ContactName  string `gorm:"size:30" json:"contact_name"`
	ContactTitle string `gorm:"size:30" json:"contact_title"`
	Address      string `gorm:"size:60" json:"address"`
	City         string `gorm:"size:15" json:"city"`
	Country      string `gorm:"size:15" json:"country"`
	Phone        string `gorm:"size:24" json:"phone"`
}

type Employee struct {
	ID        int    `gorm:"primary_key" json:"id"`
	LastName  string `gorm:"index;size:20;not null" json:"last_name"`
	FirstName string `gorm:"index;size:10;not null" json:"first_name"`
	Title     string `gorm:"size:30" json:"title"`
	City      string `gorm:"size:15" json:"city"`
	Country   string `gorm:"size:15" json:"country"`
}
