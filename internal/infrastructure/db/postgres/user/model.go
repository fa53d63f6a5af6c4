package user

import (
	"time"
)

type (
	User struct {
		ID           uint64
		Email        string
		PasswordHash string

		CreatedAt time.Time
	}
	Users []*User
)
