package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	CreatedAt    time.Time
}
