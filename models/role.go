package models

import "gorm.io/gorm"

type Role struct {
	gorm.Model
	ID   uint   `gorm:"primary_key" autoIncrement:"true" json:"RoleID"`
	Name string `gorm:"index:idx_role_name;unique;not null;" json:"NazevRole" binding:"required"`
}
