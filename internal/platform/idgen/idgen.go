package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID devuelve un UUID v4 en el formato canonico 8-4-4-4-12.
func NewID() string {
	return uuid.NewString()
}

// PetInternalID genera el identificador interno visible de una mascota:
// MAS-<anio>-<8 hex mayusculas>. No cambia nunca despues de creado.
func PetInternalID() string {
	return petInternalID(time.Now().Year(), NewID())
}

func petInternalID(year int, id string) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:8]
	return fmt.Sprintf("MAS-%d-%s", year, short)
}
