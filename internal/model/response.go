package model

// Envelope is the uniform JSON response shape for auth endpoints.
// Omitted fields are left out of the encoded body entirely.
type Envelope struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message,omitempty"`
	User        *PublicUser `json:"user,omitempty"`
	UpdatedUser *PublicUser `json:"updatedUser,omitempty"`
	Token       string      `json:"token,omitempty"`
}

// LoginResponse is the decoded body of a successful login, used by the
// API client.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}
