package domain

// GoogleIdentity holds the verified claims extracted from a Google ID token.
// It is transient; nothing here is persisted as-is.
type GoogleIdentity struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// GoogleLoginRequest is the body of POST /auth/google
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// LoginResponse is returned after a successful token exchange. The user block
// reflects the identity asserted by Google, not the stored record.
type LoginResponse struct {
	Message string         `json:"message"`
	User    *IdentityReply `json:"user"`
	JWT     string         `json:"jwt"`
}

// IdentityReply echoes the Google identity back to the client
type IdentityReply struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
