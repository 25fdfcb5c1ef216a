package auth

// Identity is an authentication-provider-managed principal. The provider
// owns it entirely; this service only creates, references, and deletes
// identities by id.
type Identity struct {
	ID    string // provider-assigned unique identifier
	Email string
}

// Session is the provider-shaped token payload returned on sign-in.
// This service relays it verbatim; it never issues or refreshes tokens.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
