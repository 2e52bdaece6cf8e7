// Package sessions mantiene las sesiones activas en memoria y notifica
// transiciones de estado de autenticacion (login/logout) a los suscriptores,
// el equivalente server-side del observeAuthState del cliente.
package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"

	"infovet/internal/platform/idgen"
	"infovet/internal/ports/auth"
)

var ErrInvalidToken = errors.New("invalid session token")

// State es lo que ven los observadores en cada transicion.
type State struct {
	LoggedIn bool
	UserID   string
	Email    string
}

type Manager struct {
	mu      sync.RWMutex
	tokens  map[string]auth.Claims
	subs    map[int]func(State)
	nextSub int
}

func NewManager() *Manager {
	return &Manager{
		tokens: make(map[string]auth.Claims),
		subs:   make(map[int]func(State)),
	}
}

// Issue crea una sesion y devuelve su token opaco.
func (m *Manager) Issue(userID, email, role string) string {
	token := idgen.NewID()
	claims := auth.Claims{UserID: userID, Email: email, Role: role}

	m.mu.Lock()
	m.tokens[token] = claims
	subs := m.snapshotSubs()
	m.mu.Unlock()

	notify(subs, State{LoggedIn: true, UserID: userID, Email: email})
	return token
}

// Revoke invalida el token. Revocar un token desconocido no es error.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	claims, ok := m.tokens[token]
	delete(m.tokens, token)
	subs := m.snapshotSubs()
	m.mu.Unlock()

	if ok {
		notify(subs, State{LoggedIn: false, UserID: claims.UserID, Email: claims.Email})
	}
}

// Verify implementa auth.Verifier sobre las sesiones locales.
func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	m.mu.RLock()
	claims, ok := m.tokens[token]
	m.mu.RUnlock()

	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Subscribe registra un observador de transiciones y devuelve la funcion
// para darse de baja (llamarla al desmontar el componente que observa).
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) snapshotSubs() []func(State) {
	out := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		out = append(out, fn)
	}
	return out
}

// notify corre fuera del lock para que un observador pueda re-entrar al manager.
func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
