package history

import (
	"strings"
	"time"
)

// EntryType clasifica la atencion. Los tipos no reconocidos se conservan tal
// cual y reciben el tratamiento de despliegue de una consulta.
type EntryType string

const (
	TypeVaccine      EntryType = "vaccine"
	TypeConsultation EntryType = "consultation"
	TypeSurgery      EntryType = "surgery"
)

// ParseEntryType normaliza los tipos conocidos (incluye los nombres del
// formulario original); lo desconocido pasa sin tocar.
func ParseEntryType(s string) EntryType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vaccine", "vacuna":
		return TypeVaccine
	case "consultation", "consulta":
		return TypeConsultation
	case "surgery", "cirugia":
		return TypeSurgery
	default:
		return EntryType(strings.TrimSpace(s))
	}
}

func (t EntryType) Display() string {
	switch t {
	case TypeVaccine:
		return "Vacuna"
	case TypeConsultation:
		return "Consulta"
	case TypeSurgery:
		return "Cirugia"
	default:
		return string(t)
	}
}

// Entry es un evento clinico de una mascota. Append-only: nunca se edita
// ni se borra.
type Entry struct {
	ID    string
	PetID string

	Date        time.Time
	Type        EntryType
	Description string
	Vet         string // veterinario que atendio
	Clinic      string // clinica o lugar

	CreatedAt time.Time
}
