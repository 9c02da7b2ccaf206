package model

import "time"

// Operator is an admin allowed to use the dashboard.
type Operator struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
