package models

import (
	"github.com/tada170/POSS/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ID        uint   `gorm:"primary_key" autoIncrement:"true" json:"UzivatelID"`
	FirstName string `gorm:"not null;" json:"Jmeno" binding:"required"`
	LastName  string `gorm:"not null;" json:"Prijmeni" binding:"required"`
	Email     string `gorm:"index:idx_email;unique;not null;" json:"Email" binding:"required,email"`
	Password  string `gorm:"not null;" json:"Heslo,omitempty"`
	RoleID    uint   `json:"RoleID" binding:"required"`
	Role      Role   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT; foreignKey:RoleID" json:"-"`
}

func GetUserByEmail(email string) (User, error) {
	var user User
	if res := database.PostgresDB.Where("Email = ?", email).First(&user); res.Error != nil {
		return User{}, res.Error
	}
	return user, nil
}

func (user *User) CreateUser() error {
	res := database.PostgresDB.Create(&user)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func (user *User) ValidatePassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}
