package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"infovet/internal/platform/idgen"
)

const minPasswordLen = 6

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCredentials   = errors.New("bad credentials")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string // vacio => no se valida confirmacion
	Phone           string
	Address         string
}

// Register valida la cuenta y la persiste con rol fijo "owner".
// La unicidad de email es check-then-create; el store Postgres ademas
// la refuerza con un indice unico.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" {
		return User{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return User{}, ErrPasswordTooShort
	}
	if in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		return User{}, ErrPasswordMismatch
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, salt, err := hashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           idgen.NewID(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         RoleOwner,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate resuelve email+password a la cuenta. Credenciales malas y
// cuenta inexistente responden lo mismo para no filtrar existencia.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrBadCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrBadCredentials
		}
		return User{}, err
	}

	ok, err := verifyPassword(password, u.PasswordSalt, u.PasswordHash)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
