package models

import "gorm.io/gorm"

type Allergen struct {
	gorm.Model
	ID   uint   `gorm:"primary_key" autoIncrement:"true" json:"AlergenID"`
	Name string `gorm:"index:idx_allergen_name;unique;not null;" json:"Nazev" binding:"required"`
}
