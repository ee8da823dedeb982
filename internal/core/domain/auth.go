package domain

// LoginRequest carries the credentials submitted by the login flow.
type LoginRequest struct {
	Email    string
	Password string
}

// Validate requires both email and password.
func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Session is the result of a successful login.
type Session struct {
	// Token is the bearer token attached to subsequent requests.
	Token string

	// User identifies the signed-in user as returned by the server.
	User string
}
