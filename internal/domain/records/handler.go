package records

import (
	"errors"
	"fmt"
	"net/http"

	"infovet/internal/domain/lookup"
	"infovet/internal/platform/logger"
	"infovet/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *lookup.Service, rnd *Renderer, log logger.Logger) {
	r.Get("/records/chip/{chip}", downloadByChipHandler(svc, rnd, log))
	r.Get("/records/id/{internalID}", downloadByIDHandler(svc, rnd, log))
}

func downloadByChipHandler(svc *lookup.Service, rnd *Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chip := chi.URLParam(r, "chip")

		rec, err := svc.FindByChip(r.Context(), chip)
		if err != nil {
			switch {
			case errors.Is(err, lookup.ErrEmptyQuery):
				respond.Fail(w, http.StatusBadRequest, "Ingresa un codigo de chip valido")
			case errors.Is(err, lookup.ErrNotFound):
				respond.NotFound(w, fmt.Sprintf("Chip %s no encontrado en el sistema", chip))
			default:
				log.Error("record by chip failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al descargar ficha medica")
			}
			return
		}

		// la busqueda por chip nombra el archivo con el chip
		serveRecord(w, rnd.Render(rec), Filename(rec.Pet.Name, rec.Pet.Chip))
	}
}

func downloadByIDHandler(svc *lookup.Service, rnd *Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		internalID := chi.URLParam(r, "internalID")

		rec, err := svc.FindByInternalID(r.Context(), internalID)
		if err != nil {
			switch {
			case errors.Is(err, lookup.ErrEmptyQuery):
				respond.Fail(w, http.StatusBadRequest, "Ingresa un ID valido")
			case errors.Is(err, lookup.ErrNotFound):
				respond.NotFound(w, fmt.Sprintf("ID %s no encontrado en el sistema", internalID))
			default:
				log.Error("record by id failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al descargar ficha medica")
			}
			return
		}

		serveRecord(w, rnd.Render(rec), Filename(rec.Pet.Name, rec.Pet.InternalID))
	}
}

func serveRecord(w http.ResponseWriter, content, filename string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}
