package models

import "gorm.io/gorm"

// TransactionItem is one payable unit of a product on a tab. Quantity is
// always 1 after request expansion; the price is snapshotted at insert time
// so later product price changes never alter historical tabs.
type TransactionItem struct {
	gorm.Model
	ID            uint        `gorm:"primary_key" autoIncrement:"true" json:"PolozkaTransakceID"`
	TransactionID uint        `json:"TransakceID"`
	Transaction   Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE; foreignKey:TransactionID" json:"-"`
	ProductID     uint        `json:"ProduktID"`
	Product       Product     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT; foreignKey:ProductID" json:"-"`
	Quantity      int         `gorm:"not null;default:1; check:quantity > 0" json:"Mnozstvi"`
	Price         float32     `gorm:"check:price >= 0; not null" json:"Cena"`
	Paid          bool        `gorm:"default:false" json:"Zaplaceno"`
}
