package domain

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dob"`
	CreatedAt   time.Time `json:"created_at"`
}
