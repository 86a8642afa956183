package domain

import "time"

// OperatorRole enumerates terminal operator permissions.
type OperatorRole string

const (
	OperatorRoleAdmin     OperatorRole = "ADMIN"
	OperatorRoleAttendant OperatorRole = "ATTENDANT"
)

// Operator is an attendant or administrator account for the facility terminals.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         OperatorRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
