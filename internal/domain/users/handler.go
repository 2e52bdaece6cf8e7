package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infovet/internal/domain/sessions"
	"infovet/internal/middleware"
	"infovet/internal/platform/logger"
	"infovet/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, mgr *sessions.Manager, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, mgr, log))
		ar.Post("/login", loginHandler(svc, mgr, log))
		ar.Post("/logout", logoutHandler(mgr))
	})

	r.Get("/me", meHandler(svc, log))
	r.Get("/users", listUsersHandler(svc, log))
	r.Get("/users/{userID}", getUserHandler(svc, log))
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func registerHandler(svc *Service, mgr *sessions.Manager, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "JSON invalido")
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Phone:           req.Phone,
			Address:         req.Address,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				respond.Fail(w, http.StatusBadRequest, "Nombre y correo son obligatorios")
			case errors.Is(err, ErrPasswordTooShort):
				respond.Fail(w, http.StatusBadRequest, "La contrasena debe tener al menos 6 caracteres")
			case errors.Is(err, ErrPasswordMismatch):
				respond.Fail(w, http.StatusBadRequest, "Las contrasenas no coinciden")
			case errors.Is(err, ErrEmailTaken):
				respond.Fail(w, http.StatusConflict, "El correo ya esta registrado")
			default:
				log.Error("register failed", map[string]any{"error": err.Error()})
				respond.Fail(w, http.StatusInternalServerError, "Error al registrarse")
			}
			return
		}

		token := mgr.Issue(u.ID, u.Email, string(u.Role))
		respond.OK(w, http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(u)})
	}
}

func loginHandler(svc *Service, mgr *sessions.Manager, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "JSON invalido")
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrBadCredentials) {
				respond.Fail(w, http.StatusUnauthorized, "Correo o contrasena invalidos")
				return
			}
			log.Error("login failed", map[string]any{"error": err.Error()})
			respond.Fail(w, http.StatusInternalServerError, "Error al iniciar sesion")
			return
		}

		token := mgr.Issue(u.ID, u.Email, string(u.Role))
		respond.OK(w, http.StatusOK, sessionResponse{Token: token, User: toUserResponse(u)})
	}
}

func logoutHandler(mgr *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := middleware.BearerToken(r.Header.Get("Authorization")); token != "" {
			mgr.Revoke(token)
		}
		respond.OK(w, http.StatusOK, nil)
	}
}

func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Fail(w, http.StatusUnauthorized, "No autenticado")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.NotFound(w, "Usuario no encontrado en base de datos")
				return
			}
			log.Error("get me failed", map[string]any{"error": err.Error(), "user_id": claims.UserID})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar usuario")
			return
		}

		respond.OK(w, http.StatusOK, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list users failed", map[string]any{"error": err.Error()})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar usuarios")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		respond.OK(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
				respond.NotFound(w, "Usuario no encontrado")
				return
			}
			log.Error("get user failed", map[string]any{"error": err.Error()})
			respond.Fail(w, http.StatusInternalServerError, "Error al cargar usuario")
			return
		}
		respond.OK(w, http.StatusOK, toUserResponse(u))
	}
}
