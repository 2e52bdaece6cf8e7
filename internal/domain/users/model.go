package users

import "time"

// Role del usuario dentro del sistema.
// El auto-registro siempre crea duenios; otros roles se asignan por fuera.
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
)

// User representa la cuenta de un duenio de mascota.
// El ID lo asigna el store al crear y no cambia despues.
type User struct {
	ID      string
	Name    string
	Email   string
	Phone   string // opcional
	Address string // opcional
	Role    Role

	// Credencial argon2id; nunca sale por la API.
	PasswordHash string
	PasswordSalt string

	CreatedAt time.Time
}
