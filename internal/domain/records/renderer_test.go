package records

import (
	"strings"
	"testing"
	"time"

	"infovet/internal/domain/history"
	"infovet/internal/domain/lookup"
	"infovet/internal/domain/pets"
	"infovet/internal/domain/users"
)

func fixedRenderer() *Renderer {
	return &Renderer{now: func() time.Time {
		return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	}}
}

func samplePet() pets.Pet {
	return pets.Pet{
		ID:         "pet-1",
		InternalID: "MAS-2024-A1B2C3D4",
		OwnerID:    "owner-1",
		Name:       "Rex",
		Species:    pets.SpeciesDog,
		Breed:      "Labrador",
		Age:        3,
		Weight:     25,
		Sex:        pets.SexMale,
		Chip:       "CL-001",
	}
}

func TestRender_AnimalSection(t *testing.T) {
	out := fixedRenderer().Render(lookup.Result{Pet: samplePet()})

	for _, want := range []string{
		"FICHA MEDICA VETERINARIA",
		"DATOS DEL ANIMAL",
		"ID Sistema:          MAS-2024-A1B2C3D4",
		"Nombre:              Rex",
		"Especie:             Perro",
		"Raza:                Labrador",
		"Edad:                3 anios",
		"Peso:                25 kg",
		"Sexo:                Macho",
		"Codigo de Chip:      CL-001",
		"Observaciones:       Sin observaciones",
		"FECHA DE DESCARGA: 15-07-2024",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("falta %q en la ficha:\n%s", want, out)
		}
	}

	// sin duenio adjunto no hay seccion de duenio
	if strings.Contains(out, "DATOS DEL DUENIO") {
		t.Error("seccion de duenio sin duenio adjunto")
	}
	if !strings.Contains(out, "Sin registros medicos.") {
		t.Error("falta el placeholder de historial vacio")
	}
}

func TestRender_MissingInternalIDRendersNA(t *testing.T) {
	p := samplePet()
	p.InternalID = ""

	out := fixedRenderer().Render(lookup.Result{Pet: p})
	if !strings.Contains(out, "ID Sistema:          N/A") {
		t.Error("id interno ausente no salio como N/A")
	}
}

func TestRender_OwnerSection(t *testing.T) {
	owner := users.User{
		Name:  "Ana Gomez",
		Email: "ana@example.com",
		Phone: "+56 9 1234 5678",
	}

	out := fixedRenderer().Render(lookup.Result{Pet: samplePet(), Owner: &owner})

	for _, want := range []string{
		"DATOS DEL DUENIO",
		"Nombre:              Ana Gomez",
		"Telefono:            +56 9 1234 5678",
		"Direccion:           N/A",
		"Email:               ana@example.com",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("falta %q en la seccion de duenio", want)
		}
	}
}

func TestRender_HistoryNewestFirst(t *testing.T) {
	entries := []history.Entry{
		{
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Type:        history.TypeSurgery,
			Description: "Esterilizacion",
			Vet:         "Dra. Rivas",
			Clinic:      "Clinica Sur",
		},
		{
			Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        history.TypeVaccine,
			Description: "Antirrabica",
			Vet:         "Dr. Soto",
			Clinic:      "Clinica Central",
		},
	}

	out := fixedRenderer().Render(lookup.Result{Pet: samplePet(), History: entries})

	idx := strings.Index(out, "HISTORIAL CLINICO")
	if idx < 0 {
		t.Fatal("falta HISTORIAL CLINICO")
	}

	first := strings.Index(out, "Dra. Rivas")
	second := strings.Index(out, "Dr. Soto")
	if first < 0 || second < 0 {
		t.Fatal("faltan veterinarios en la ficha")
	}
	if !(idx < first && first < second) {
		t.Error("el historial no sale de mas reciente a mas antiguo")
	}

	for _, want := range []string{
		"Fecha:               01-06-2024",
		"Tipo de Atencion:    Cirugia",
		"Fecha:               01-01-2024",
		"Tipo de Atencion:    Vacuna",
		"Clinica/Lugar:       Clinica Central",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("falta %q en el historial", want)
		}
	}
}

func TestRender_WeightFormatting(t *testing.T) {
	p := samplePet()
	p.Weight = 4.5

	out := fixedRenderer().Render(lookup.Result{Pet: p})
	if !strings.Contains(out, "Peso:                4.5 kg") {
		t.Error("peso decimal mal formateado")
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Rex", "MAS-2024-A1B2C3D4")
	if got != "ficha-medica-Rex-MAS-2024-A1B2C3D4.txt" {
		t.Fatalf("filename %q", got)
	}
}
