package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "infovet/internal/adapters/storage/memory"
	"infovet/internal/domain/history"
)

func TestAdd_RequiresDateTypeDescription(t *testing.T) {
	svc := history.NewService(mem.NewHistoryRepo(0))
	ctx := context.Background()
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []history.AddInput{
		{Type: "Vacuna", Description: "x"},               // sin fecha
		{Date: date, Description: "x"},                   // sin tipo
		{Date: date, Type: "Vacuna", Description: "   "}, // sin descripcion
	}
	for i, in := range cases {
		if _, err := svc.Add(ctx, "pet-1", in); !errors.Is(err, history.ErrIncompleteEntry) {
			t.Errorf("caso %d: esperaba ErrIncompleteEntry, got %v", i, err)
		}
	}

	if _, err := svc.Add(ctx, "", history.AddInput{Date: date, Type: "Vacuna", Description: "x"}); err == nil {
		t.Error("pet id vacio acepto")
	}
}

func TestAdd_AppendsWithServerTimestamp(t *testing.T) {
	repo := mem.NewHistoryRepo(0)
	svc := history.NewService(repo)
	ctx := context.Background()

	e, err := svc.Add(ctx, "pet-1", history.AddInput{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:        "vacuna",
		Description: "  Antirrabica  ",
		Vet:         "Dr. Soto",
		Clinic:      "Clinica Central",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Error("id o created_at sin asignar")
	}
	if e.Type != history.TypeVaccine {
		t.Errorf("tipo %q, esperaba vaccine", e.Type)
	}
	if e.Description != "Antirrabica" {
		t.Errorf("descripcion sin trim: %q", e.Description)
	}

	entries, err := svc.ListByPet(ctx, "pet-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("esperaba 1 entrada, hay %d", len(entries))
	}
}

func TestParseEntryType_UnknownFallsBackToRaw(t *testing.T) {
	if got := history.ParseEntryType("Cirugia"); got != history.TypeSurgery {
		t.Errorf("cirugia => %q", got)
	}
	// lo desconocido se conserva y se despliega tal cual
	unknown := history.ParseEntryType("Acupuntura")
	if unknown.Display() != "Acupuntura" {
		t.Errorf("display de tipo desconocido: %q", unknown.Display())
	}
	if history.TypeVaccine.Display() != "Vacuna" {
		t.Errorf("display vacuna: %q", history.TypeVaccine.Display())
	}
}
