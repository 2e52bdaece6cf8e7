package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// ParseSpecies normaliza la especie, aceptando los valores del formulario
// original en espanol.
func ParseSpecies(s string) (Species, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dog", "perro":
		return SpeciesDog, true
	case "cat", "gato":
		return SpeciesCat, true
	case "other", "otro", "otra":
		return SpeciesOther, true
	default:
		return "", false
	}
}

func (s Species) Display() string {
	switch s {
	case SpeciesDog:
		return "Perro"
	case SpeciesCat:
		return "Gato"
	default:
		return "Otro"
	}
}

// Sex define el sexo de la mascota.
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexUnspecified Sex = "unspecified"
)

func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "macho":
		return SexMale
	case "female", "hembra":
		return SexFemale
	default:
		return SexUnspecified
	}
}

func (s Sex) Display() string {
	switch s {
	case SexMale:
		return "Macho"
	case SexFemale:
		return "Hembra"
	default:
		return "No especificado"
	}
}

// PlaceholderPhoto es la foto por defecto cuando no se sube una.
const PlaceholderPhoto = "/a-cute-pet.png"

// Pet es la ficha basica de una mascota.
//
// ID lo asigna el store. InternalID (MAS-<anio>-<8 hex>) se genera al crear y
// no cambia nunca. Chip se guarda normalizado (trim + mayusculas) y es unico
// entre todas las mascotas. El historial no vive inline: se asocia por PetID
// y se trae aparte.
type Pet struct {
	ID         string
	InternalID string
	OwnerID    string

	Name    string
	Species Species
	Breed   string
	Age     int     // anios cumplidos, >= 0
	Weight  float64 // kg, > 0
	Sex     Sex

	Chip  string
	Notes string
	Photo string

	CreatedAt time.Time
}
