package models

import (
	"time"

	"gorm.io/gorm"
)

// User types
const (
	UserTypeAdmin = "ADMIN"
	UserTypeUser  = "USER"
)

// User represents an application user. Passwords are stored as bcrypt hashes
// and never serialized.
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Name      string    `gorm:"size:100;not null;column:name" json:"name"`
	UserType  string    `gorm:"size:20;check:user_type IN ('ADMIN','USER');not null;column:user_type" json:"user_type"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// SeedAdminUser inserts the initial admin account when the users table is
// empty. The caller provides the already-hashed password.
func SeedAdminUser(db *gorm.DB, email, hashedPassword string) error {
	if email == "" || hashedPassword == "" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		admin := User{
			Email:    email,
			Password: hashedPassword,
			Name:     "Administrador",
			UserType: UserTypeAdmin,
		}
		return tx.Create(&admin).Error
	})
}
