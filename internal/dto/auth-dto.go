package dto

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialLoginRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Picture string `json:"picture"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// TokensData is the signed token pair handed out on every successful login.
// Expiries are remaining lifetimes in seconds.
type TokensData struct {
	AccessToken         string `json:"access_token"`
	RefreshToken        string `json:"refresh_token,omitempty"`
	AccessTokenExpires  int64  `json:"access_token_expires"`
	RefreshTokenExpires int64  `json:"refresh_token_expires,omitempty"`
}

// UserData is the client-facing user shape. IsLeftReview tells the frontend
// whether to offer "edit your review" instead of "leave a review".
type UserData struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Picture      *string `json:"picture,omitempty"`
	IsLeftReview bool    `json:"is_left_review"`
}

type AuthData struct {
	User   UserData   `json:"user"`
	Tokens TokensData `json:"tokens"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
