package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	ID   uint   `gorm:"primary_key" autoIncrement:"true" json:"KategorieID"`
	Name string `gorm:"not null;" json:"Nazev" binding:"required"`
}
