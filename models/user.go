package models

import "time"

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Account   string    `gorm:"uniqueIndex;size:50;not null" json:"account"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"index;size:100;not null" json:"email"`
	Birthday  *time.Time `json:"birthday"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Account         string `json:"account" binding:"required" validate:"required,min=4,max=50"`
	Password        string `json:"password" binding:"required" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required" validate:"required,eqfield=Password"`
	Name            string `json:"name" binding:"required" validate:"required"`
	Email           string `json:"email" binding:"required" validate:"required,email"`
	Birthday        string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
}
