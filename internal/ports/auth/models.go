package auth

// Claims representa la identidad extraida de un token de sesion.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
