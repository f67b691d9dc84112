package domain

import "net/http"

type CredentialKind string

const (
	CredentialToken  CredentialKind = "token"
	CredentialSecret CredentialKind = "secret"
)

// AdminSecretHeader carries the shared admin secret to the notes API.
const AdminSecretHeader = "x-admin-secret"

// Credential is what an admin presents to the notes API. The web server only
// forwards it; the API decides whether it grants access, expiry included.
type Credential struct {
	Kind  CredentialKind `json:"kind"`
	Value string         `json:"value"`
}

func (c *Credential) Valid() bool {
	return c != nil && c.Value != "" && (c.Kind == CredentialToken || c.Kind == CredentialSecret)
}

// Apply sets the header matching the credential kind on req.
func (c *Credential) Apply(req *http.Request) {
	if !c.Valid() {
		return
	}
	switch c.Kind {
	case CredentialSecret:
		req.Header.Set(AdminSecretHeader, c.Value)
	default:
		req.Header.Set("Authorization", "Bearer "+c.Value)
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}
