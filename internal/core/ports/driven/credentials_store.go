package driven

// CredentialStore holds the process-wide bearer credential.
// It is read by the gateway on every call and written only by the
// login and logout flows.
type CredentialStore interface {
	// AccessToken returns the current token, or "" when signed out.
	AccessToken() string

	// Account returns the email the token was issued for.
	Account() string

	// Store persists a new token for the given account.
	Store(account, token string) error

	// Clear removes any stored token.
	Clear() error
}
