package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string
	FullName     string
	CreatedAt    time.Time
}
