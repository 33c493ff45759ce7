package model

import "time"

// 顧客。emailでIdentityと紐づく
type Customer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"customerId"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CompanyName string    `gorm:"type:varchar(255)" json:"companyName"`
	ContactName string    `gorm:"type:varchar(255)" json:"contactName"`
	Address     string    `gorm:"type:varchar(255)" json:"address"`
	City        string    `gorm:"type:varchar(100)" json:"city"`
	Region      string    `gorm:"type:varchar(100)" json:"region"`
	PostalCode  string    `gorm:"type:varchar(20)" json:"postalCode"`
	Country     string    `gorm:"type:varchar(100)" json:"country"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone"`
	Fax         string    `gorm:"type:varchar(30)" json:"fax"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
