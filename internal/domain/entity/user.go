package entity

import "time"

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
