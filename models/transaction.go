package models

import "gorm.io/gorm"

// Transaction is a customer tab: one named check grouping payable item rows.
type Transaction struct {
	gorm.Model
	ID     uint              `gorm:"primary_key" autoIncrement:"true" json:"TransakceID"`
	Name   string            `gorm:"not null;" json:"Nazev"`
	UserID uint              `json:"UzivatelID"`
	User   User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT; foreignKey:UserID" json:"-"`
	Paid   bool              `gorm:"default:false" json:"Zaplaceno"`
	Items  []TransactionItem `gorm:"foreignKey:TransactionID" json:"Polozky,omitempty"`
}
