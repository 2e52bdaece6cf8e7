package lookup

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"infovet/internal/domain/history"
	"infovet/internal/domain/pets"
	"infovet/internal/middleware"
	"infovet/internal/platform/logger"
	"infovet/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/pets", listByOwnerHandler(svc, log))
	r.Get("/lookup/chip/{chip}", findByChipHandler(svc, log))
	r.Get("/lookup/id/{internalID}", findByIDHandler(svc, log))
	r.Get("/chips/{chip}/unique", checkChipHandler(svc, log))
}

type ownerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type resultResponse struct {
	pets.PetResponse
	Owner   *ownerResponse          `json:"owner,omitempty"`
	History []history.EntryResponse `json:"history"`
}

type chipCheckResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

func toResultResponse(res Result) resultResponse {
	out := resultResponse{
		PetResponse: pets.ToPetResponse(res.Pet),
		History:     history.ToEntryResponses(res.History),
	}
	if res.Owner != nil {
		out.Owner = &ownerResponse{
			ID:      res.Owner.ID,
			Name:    res.Owner.Name,
			Email:   res.Owner.Email,
			Phone:   res.Owner.Phone,
			Address: res.Owner.Address,
		}
	}
	return out
}

func listByOwnerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := strings.TrimSpace(r.URL.Query().Get("owner_id"))
		if ownerID == "" {
			// sin owner_id explicito se listan las del usuario autenticado
			claims, ok := middleware.GetClaims(r.Context())
			if !ok {
				respond.Fail(w, http.StatusUnauthorized, "Usuario no autenticado")
				return
			}
			ownerID = claims.UserID
		}

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			log.Error("list pets failed", map[string]any{"error": err.Error(), "owner_id": ownerID})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar mascotas")
			return
		}

		out := make([]resultResponse, 0, len(items))
		for _, res := range items {
			out = append(out, toResultResponse(res))
		}
		respond.OK(w, http.StatusOK, out)
	}
}

func findByChipHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chip := chi.URLParam(r, "chip")

		res, err := svc.FindByChip(r.Context(), chip)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyQuery):
				respond.Fail(w, http.StatusBadRequest, "Ingresa un codigo de chip valido")
			case errors.Is(err, ErrNotFound):
				respond.NotFound(w, fmt.Sprintf("Chip %s no encontrado en el sistema", chip))
			default:
				log.Error("lookup by chip failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al buscar por chip")
			}
			return
		}

		respond.OK(w, http.StatusOK, toResultResponse(res))
	}
}

func findByIDHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		internalID := chi.URLParam(r, "internalID")

		res, err := svc.FindByInternalID(r.Context(), internalID)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyQuery):
				respond.Fail(w, http.StatusBadRequest, "Ingresa un ID valido")
			case errors.Is(err, ErrNotFound):
				respond.NotFound(w, fmt.Sprintf("ID %s no encontrado en el sistema", internalID))
			default:
				log.Error("lookup by id failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al buscar por ID")
			}
			return
		}

		respond.OK(w, http.StatusOK, toResultResponse(res))
	}
}

func checkChipHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := svc.CheckChipUnique(r.Context(), chi.URLParam(r, "chip"))
		if err != nil {
			if errors.Is(err, ErrEmptyQuery) {
				respond.Fail(w, http.StatusBadRequest, "Chip invalido")
				return
			}
			log.Error("chip check failed", map[string]any{"error": err.Error()})
			respond.Fail(w, http.StatusInternalServerError, "Error al validar chip")
			return
		}

		msg := "Chip disponible"
		if exists {
			msg = "Este chip ya esta registrado en el sistema"
		}
		respond.OK(w, http.StatusOK, chipCheckResponse{Exists: exists, Message: msg})
	}
}
