package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"infovet/internal/middleware"
	"infovet/internal/platform/logger"
	"infovet/internal/platform/respond"
	"infovet/internal/ports/blob"

	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 5 << 20

func RegisterRoutes(r chi.Router, svc *Service, photos blob.Store, log logger.Logger) {
	r.Post("/pets", createPetHandler(svc, log))
	r.Get("/pets/{petID}", getPetHandler(svc, log))

	r.Put("/pets/{petID}/photo", uploadPhotoHandler(svc, photos, log))
	r.Get("/pets/{petID}/photo", getPhotoHandler(svc, photos, log))
}

type createPetRequest struct {
	OwnerID string   `json:"owner_id"`
	Name    string   `json:"name"`
	Species string   `json:"species"`
	Breed   string   `json:"breed"`
	Age     *int     `json:"age"`
	Weight  *float64 `json:"weight"`
	Sex     string   `json:"sex"`
	Chip    string   `json:"chip"`
	Notes   string   `json:"notes"`
	Photo   string   `json:"photo"`
}

// PetResponse es la forma publica de una mascota; lookup y listados la reusan.
type PetResponse struct {
	ID         string    `json:"id"`
	InternalID string    `json:"internal_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	Breed      string    `json:"breed"`
	Age        int       `json:"age"`
	Weight     float64   `json:"weight"`
	Sex        string    `json:"sex"`
	Chip       string    `json:"chip"`
	Notes      string    `json:"notes"`
	Photo      string    `json:"photo"`
	CreatedAt  time.Time `json:"created_at"`
}

type createPetResponse struct {
	PetResponse
	History []any `json:"history"` // siempre vacio al crear
}

func ToPetResponse(p Pet) PetResponse {
	return PetResponse{
		ID:         p.ID,
		InternalID: p.InternalID,
		OwnerID:    p.OwnerID,
		Name:       p.Name,
		Species:    string(p.Species),
		Breed:      p.Breed,
		Age:        p.Age,
		Weight:     p.Weight,
		Sex:        string(p.Sex),
		Chip:       p.Chip,
		Notes:      p.Notes,
		Photo:      p.Photo,
		CreatedAt:  p.CreatedAt,
	}
}

func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Fail(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "JSON invalido")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			OwnerID: req.OwnerID,
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
			Weight:  req.Weight,
			Sex:     req.Sex,
			Chip:    req.Chip,
			Notes:   req.Notes,
			Photo:   req.Photo,
		})
		if err != nil {
			var ve *ValidationError
			switch {
			case errors.As(err, &ve):
				respond.Fail(w, http.StatusBadRequest, ve.Message)
			case errors.Is(err, ErrChipTaken):
				respond.Fail(w, http.StatusConflict, "Este chip ya esta registrado en el sistema")
			default:
				log.Error("create pet failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al registrar mascota")
			}
			return
		}

		respond.OKMessage(w, http.StatusCreated,
			createPetResponse{PetResponse: ToPetResponse(p), History: []any{}},
			fmt.Sprintf("Mascota %s registrada con ID: %s", p.Name, p.InternalID),
		)
	}
}

func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.NotFound(w, "Mascota no encontrada")
				return
			}
			log.Error("get pet failed", map[string]any{"error": err.Error()})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar mascota")
			return
		}
		respond.OK(w, http.StatusOK, ToPetResponse(p))
	}
}

func photoKey(petID string) string {
	return "mascotas/" + petID + "/foto"
}

func uploadPhotoHandler(svc *Service, photos blob.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Fail(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := svc.GetByID(r.Context(), petID); err != nil {
			respond.NotFound(w, "Mascota no encontrada")
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoBytes+1))
		if err != nil || len(data) == 0 {
			respond.Fail(w, http.StatusBadRequest, "Foto invalida")
			return
		}
		if len(data) > maxPhotoBytes {
			respond.Fail(w, http.StatusRequestEntityTooLarge, "La foto supera el tamano maximo")
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		if err := photos.Put(r.Context(), photoKey(petID), data, contentType); err != nil {
			log.Error("upload photo failed", map[string]any{"error": err.Error(), "pet_id": petID})
			respond.Fail(w, http.StatusInternalServerError, "Error al subir la foto")
			return
		}

		respond.OK(w, http.StatusOK, map[string]string{"photo": photoKey(petID)})
	}
}

func getPhotoHandler(svc *Service, photos blob.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := svc.GetByID(r.Context(), petID); err != nil {
			respond.NotFound(w, "Mascota no encontrada")
			return
		}

		data, contentType, err := photos.Get(r.Context(), photoKey(petID))
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				respond.NotFound(w, "La mascota no tiene foto")
				return
			}
			log.Error("get photo failed", map[string]any{"error": err.Error(), "pet_id": petID})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar la foto")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
