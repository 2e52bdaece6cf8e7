package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infovet/internal/domain/pets"
	"infovet/internal/middleware"
	"infovet/internal/platform/logger"
	"infovet/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, log logger.Logger) {
	r.Post("/pets/{petID}/history", addEntryHandler(svc, petsSvc, log))
	r.Get("/pets/{petID}/history", listEntriesHandler(svc, petsSvc, log))
}

type addEntryRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Type        string `json:"type"`
	Description string `json:"description"`
	Vet         string `json:"vet"`
	Clinic      string `json:"clinic"`
}

// EntryResponse es la forma publica de una entrada; lookup la reusa.
type EntryResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Vet         string    `json:"vet"`
	Clinic      string    `json:"clinic"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		PetID:       e.PetID,
		Date:        e.Date.Format("2006-01-02"),
		Type:        string(e.Type),
		Description: e.Description,
		Vet:         e.Vet,
		Clinic:      e.Clinic,
		CreatedAt:   e.CreatedAt,
	}
}

func ToEntryResponses(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

func addEntryHandler(svc *Service, petsSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Fail(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			respond.NotFound(w, "Mascota no encontrada")
			return
		}

		var req addEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "JSON invalido")
			return
		}

		var date time.Time
		if req.Date != "" {
			t, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				respond.Fail(w, http.StatusBadRequest, "La fecha debe ser YYYY-MM-DD")
				return
			}
			date = t
		}

		e, err := svc.Add(r.Context(), petID, AddInput{
			Date:        date,
			Type:        req.Type,
			Description: req.Description,
			Vet:         req.Vet,
			Clinic:      req.Clinic,
		})
		if err != nil {
			if errors.Is(err, ErrIncompleteEntry) {
				respond.Fail(w, http.StatusBadRequest, "Datos incompletos")
				return
			}
			log.Error("add history failed", map[string]any{"error": err.Error(), "pet_id": petID})
			respond.Fail(w, http.StatusInternalServerError, "Error al agregar registro medico")
			return
		}

		respond.OK(w, http.StatusCreated, ToEntryResponse(e))
	}
}

func listEntriesHandler(svc *Service, petsSvc *pets.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.GetByID(r.Context(), petID); err != nil {
			respond.NotFound(w, "Mascota no encontrada")
			return
		}

		entries, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			log.Error("list history failed", map[string]any{"error": err.Error(), "pet_id": petID})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar historial")
			return
		}

		respond.OK(w, http.StatusOK, ToEntryResponses(entries))
	}
}
