package dto

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token being rotated.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenPairResponse represents the response for a successful authentication.
type TokenPairResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"` // Access token lifetime in seconds
	User         UserResponse `json:"user"`
}

// GoogleCallbackRequest carries the authorization code from Google's consent
// redirect.
type GoogleCallbackRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirectURI" binding:"required"`
}
