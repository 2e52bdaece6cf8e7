// Package records genera la ficha medica en texto plano con el layout fijo
// del sistema: banner de caracteres de caja, etiquetas alineadas a columna
// fija y fechas en formato es-CL (dd-mm-aaaa).
package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"infovet/internal/domain/lookup"
)

const (
	bannerLine  = "════════════════════════════════════════════════════════════════"
	sectionLine = "────────────────────────────────────────────────────────────────"

	// ancho de la columna de etiquetas, incluido el ":"
	labelWidth = 21
)

// Renderer arma el contenido de la ficha. Puro sobre su entrada salvo por la
// fecha de generacion, inyectable para tests.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

func localDate(t time.Time) string {
	return t.Format("02-01-2006")
}

func line(label, value string) string {
	return fmt.Sprintf("%-*s%s\n", labelWidth, label+":", value)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// Render produce el documento completo: cabecera, datos del animal, datos del
// duenio (si viene adjunto), historial de mas reciente a mas antiguo y pie con
// fecha de generacion.
func (r *Renderer) Render(rec lookup.Result) string {
	p := rec.Pet

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(bannerLine + "\n")
	b.WriteString("                    FICHA MEDICA VETERINARIA\n")
	b.WriteString("                          InfoVet\n")
	b.WriteString(bannerLine + "\n\n")

	b.WriteString("DATOS DEL ANIMAL\n")
	b.WriteString(sectionLine + "\n")
	b.WriteString(line("ID Sistema", orNA(p.InternalID)))
	b.WriteString(line("Nombre", p.Name))
	b.WriteString(line("Especie", p.Species.Display()))
	b.WriteString(line("Raza", p.Breed))
	b.WriteString(line("Edad", fmt.Sprintf("%d anios", p.Age)))
	b.WriteString(line("Peso", strconv.FormatFloat(p.Weight, 'f', -1, 64)+" kg"))
	b.WriteString(line("Sexo", p.Sex.Display()))
	b.WriteString(line("Codigo de Chip", p.Chip))
	if strings.TrimSpace(p.Notes) == "" {
		b.WriteString(line("Observaciones", "Sin observaciones"))
	} else {
		b.WriteString(line("Observaciones", p.Notes))
	}
	b.WriteString("\n")

	if rec.Owner != nil {
		o := rec.Owner
		b.WriteString("DATOS DEL DUENIO\n")
		b.WriteString(sectionLine + "\n")
		b.WriteString(line("Nombre", o.Name))
		b.WriteString(line("Telefono", orNA(o.Phone)))
		b.WriteString(line("Direccion", orNA(o.Address)))
		b.WriteString(line("Email", o.Email))
		b.WriteString("\n")
	}

	b.WriteString("HISTORIAL CLINICO\n")
	b.WriteString(sectionLine + "\n")

	if len(rec.History) == 0 {
		b.WriteString("\nSin registros medicos.\n")
	} else {
		// el repo ya entrega mas reciente primero
		for _, e := range rec.History {
			b.WriteString("\n")
			b.WriteString(line("Fecha", localDate(e.Date)))
			b.WriteString(line("Tipo de Atencion", e.Type.Display()))
			b.WriteString(line("Descripcion", e.Description))
			b.WriteString(line("Veterinario", e.Vet))
			b.WriteString(line("Clinica/Lugar", e.Clinic))
			b.WriteString(sectionLine + "\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString("GENERADO POR: InfoVet\n")
	b.WriteString("FECHA DE DESCARGA: " + localDate(r.now()) + "\n\n")
	b.WriteString(bannerLine + "\n")
	b.WriteString("  Este documento es una copia de la ficha medica registrada en\n")
	b.WriteString("  el sistema InfoVet. Para cambios, contacta a tu veterinario.\n")
	b.WriteString(bannerLine + "\n")

	return b.String()
}

// Filename arma el nombre del archivo descargable:
// ficha-medica-<nombre>-<clave>.txt, donde clave es el ID interno o el chip
// segun la via de busqueda usada.
func Filename(petName, key string) string {
	return fmt.Sprintf("ficha-medica-%s-%s.txt", petName, key)
}
