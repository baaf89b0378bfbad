package models

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	ID         uint       `gorm:"primary_key" autoIncrement:"true" json:"ProduktID"`
	Name       string     `gorm:"index:idx_product_name;not null;" json:"Nazev" binding:"required"`
	Price      float32    `gorm:"check:price >= 0; not null" json:"Cena"`
	CategoryID uint       `json:"KategorieID"`
	Category   Category   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT; foreignKey:CategoryID" json:"-"`
	Allergens  []Allergen `gorm:"many2many:product_allergens;" json:"Alergeny,omitempty"`
}
