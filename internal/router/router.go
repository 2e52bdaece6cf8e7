package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	blobmem "infovet/internal/adapters/blob/memory"
	mem "infovet/internal/adapters/storage/memory"
	pg "infovet/internal/adapters/storage/postgres"
	"infovet/internal/domain/history"
	"infovet/internal/domain/lookup"
	"infovet/internal/domain/pets"
	"infovet/internal/domain/records"
	"infovet/internal/domain/sessions"
	"infovet/internal/domain/users"
	"infovet/internal/middleware"
	"infovet/internal/platform/logger"
	"infovet/internal/ports/auth"
	"infovet/internal/ports/blob"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Verificador remoto opcional; las sesiones locales se consultan primero.
	Verifier auth.Verifier

	// Si viene, usa Postgres. Si no, repos in-memory (modo mock).
	DB *sql.DB

	// Store de fotos; nil => blob en memoria.
	Photos blob.Store

	// Latencia artificial de los repos in-memory.
	MockLatency time.Duration

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{App: "infovet"})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	manager := sessions.NewManager()

	verifier := auth.Verifier(manager)
	if opts.Verifier != nil {
		verifier = chainVerifier{manager, opts.Verifier}
	}
	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo    users.Repository
		petRepo     pets.Repository
		historyRepo history.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		historyRepo = pg.NewHistoryRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo(opts.MockLatency)
		petRepo = mem.NewPetRepo(opts.MockLatency)
		historyRepo = mem.NewHistoryRepo(opts.MockLatency)
	}

	photos := opts.Photos
	if photos == nil {
		photos = blobmem.NewStore()
	}

	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	historySvc := history.NewService(historyRepo)
	lookupSvc := lookup.NewService(petRepo, userRepo, historyRepo)
	renderer := records.NewRenderer()

	users.RegisterRoutes(r, usersSvc, manager, log)
	pets.RegisterRoutes(r, petsSvc, photos, log)
	history.RegisterRoutes(r, historySvc, petsSvc, log)
	lookup.RegisterRoutes(r, lookupSvc, log)
	records.RegisterRoutes(r, lookupSvc, renderer, log)

	return r
}

// chainVerifier consulta las sesiones locales primero y cae al verificador
// remoto para tokens emitidos por el IAM externo.
type chainVerifier []auth.Verifier

func (c chainVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	var lastErr error
	for _, v := range c {
		claims, err := v.Verify(ctx, token)
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}
	return auth.Claims{}, lastErr
}
