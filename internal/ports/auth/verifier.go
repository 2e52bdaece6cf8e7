package auth

import "context"

// Verifier valida un token y devuelve claims o error.
// Lo implementan el gestor de sesiones local y el adapter remoto.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
