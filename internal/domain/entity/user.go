package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// User representa un usuario del sistema (administrador o trabajador de almacén).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, worker
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
