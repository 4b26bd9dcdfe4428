package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Firstname    string    `gorm:"type:varchar(50);not null" json:"firstname"`
	Lastname     string    `gorm:"type:varchar(50);not null" json:"lastname"`
	Slug         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName is the source the user slug is derived from.
func (u User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
