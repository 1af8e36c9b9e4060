package dto

// PasswordResetEvent travels over kafka from the auth service to the mail
// consumer. ExpiresAt is RFC3339.
type PasswordResetEvent struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
