package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

// User is a back-office account. Users act on the ledger and review refund
// requests.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
